package model

// ExportFile is a rendered export artifact ready to be served as a
// download attachment
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}
