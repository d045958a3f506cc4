package models

// Choice is a value/label pair for enumerated fields, used to populate
// admin filters and form selects.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// UnknownValueError is returned by the Parse* functions for values outside
// an enumeration.
type UnknownValueError struct {
	Kind  string
	Value string
}

func (e *UnknownValueError) Error() string {
	return "unknown " + e.Kind + " " + `"` + e.Value + `"`
}
