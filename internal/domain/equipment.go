package domain

// Equipment is a read-only snapshot of an equipment record owned by the
// registry.
type Equipment struct {
	ID       string
	Serial   string
	Brand    string
	Model    string
	Area     string
	Provider string

	// NextMaintenance and LastMaintenance hold the raw stored encodings.
	NextMaintenance any
	LastMaintenance any
}

func (e Equipment) Label() string {
	switch {
	case e.Brand != "" && e.Model != "":
		return e.Brand + " " + e.Model
	case e.Brand != "":
		return e.Brand
	default:
		return e.Model
	}
}
