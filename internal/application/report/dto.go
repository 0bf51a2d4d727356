package report

// StatisticsQuery captures the shared range query parameters. Dates
// use the 2006-01-02 layout; status optionally narrows the orders
// counted.
type StatisticsQuery struct {
	FromDate string `form:"fromDate" binding:"required"`
	ToDate   string `form:"toDate" binding:"required"`
	Status   string `form:"status"`
}

// TopBooksQuery adds the ranking metric and row limit
type TopBooksQuery struct {
	StatisticsQuery
	Metric string `form:"metric"`
	Limit  int    `form:"limit"`
}
