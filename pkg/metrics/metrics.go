package metrics

/*
Labels and so on for metrics used in the console.
*/

const (
	LabelMethod  = "method"
	LabelRoute   = "route"
	LabelSuccess = "success"
)
