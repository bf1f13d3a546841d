package model

import "fmt"

// Method names the query strategy that produced a result.
type Method string

const (
	MethodPropertyGraph Method = "property_graph_pgql"
	MethodSQLFallback   Method = "sql_fallback"

	MethodMediaJoin Method = "media_join"
	MethodPlain     Method = "plain"

	MethodVector       Method = "vector"
	MethodTextFallback Method = "text_fallback"
)

// Candidate is a movie reached through the two-hop watched pattern.
type Candidate struct {
	ID           MovieID
	Title        string
	Summary      string
	Rating       float64
	Genres       Genres
	SimilarUsers int
}

type Recommendation struct {
	Candidate
	PosterURL *string
}

func (r Recommendation) Reason() string {
	return fmt.Sprintf("%d users with similar taste watched this", r.SimilarUsers)
}

type Recommendations struct {
	CustomerID CustomerID
	Method     Method
	Items      []Recommendation
}

type SimilarCustomer struct {
	ID           CustomerID
	Name         string
	CommonMovies int
}

type NodeType string

const (
	NodeCustomer NodeType = "customer"
	NodeMovie    NodeType = "movie"
)

func CustomerNodeID(id CustomerID) string {
	return fmt.Sprintf("c%d", id)
}

func MovieNodeID(id MovieID) string {
	return fmt.Sprintf("m%d", id)
}

type Node struct {
	ID     string
	Label  string
	Type   NodeType
	Group  int
	Size   int
	Genres []string

	// Set on similar customer nodes only.
	CommonMovies int
}

type Edge struct {
	Source string
	Target string
	Type   string
	Value  int
}

type CustomerGraph struct {
	Nodes   []Node
	Edges   []Edge
	Total   int
	Showing int
	Method  Method
}

type NetworkStats struct {
	TotalNodes int
	TotalLinks int
	Customers  int
	Movies     int
}

type Network struct {
	Nodes  []Node
	Links  []Edge
	Stats  NetworkStats
	Method Method
}

type CustomerSide struct {
	ID           CustomerID
	Name         string
	TotalMovies  int
	UniqueMovies []MovieRef
	UniqueCount  int
}

type Comparison struct {
	Customer1       CustomerSide
	Customer2       CustomerSide
	Common          []MovieRef
	CommonCount     int
	SimilarityScore int
}
