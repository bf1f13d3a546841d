package model

type CustomerID = int64

type Customer struct {
	ID          CustomerID
	FirstName   string
	LastName    string
	Email       string
	MoviesCount int
}

func (c Customer) Name() string {
	return c.FirstName + " " + c.LastName
}

type WatchInput struct {
	CustomerID CustomerID
	MovieID    MovieID
	Rating     *float64
}

type WatchOutcome int

const (
	WatchInserted WatchOutcome = iota
	WatchRatingUpdated
)
