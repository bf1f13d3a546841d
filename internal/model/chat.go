package model

const NoHistory = "No history"

type GenerateOptions struct {
	Temperature float64
	MaxTokens   int
}

type ChatRequest struct {
	Message    string
	CustomerID *CustomerID
}

type ChatAnswer struct {
	Message    string
	Response   string
	MovieCards []Recommendation
	GraphUsed  bool
	Method     Method
}

type SmartAnswer struct {
	Message       string
	Response      string
	GraphInsights []string
	ContextUsed   bool
}
