package docpipe

// Format identifies a document type.
type Format string

const (
	FormatTXT  Format = "txt"
	FormatMD   Format = "md"
	FormatDocx Format = "docx"
	FormatODT  Format = "odt"
	FormatPDF  Format = "pdf"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Kind groups concrete formats by extraction family.
type Kind string

const (
	KindPlainText     Kind = "plain-text"
	KindWordProcessor Kind = "word-processor"
	KindPDF           Kind = "pdf"
	KindTabular       Kind = "tabular"
)

// Kind returns the extraction family of a format.
func (f Format) Kind() Kind {
	switch f {
	case FormatTXT, FormatMD:
		return KindPlainText
	case FormatDocx, FormatODT:
		return KindWordProcessor
	case FormatPDF:
		return KindPDF
	case FormatCSV, FormatXLSX:
		return KindTabular
	}
	return ""
}

// RawDocument is one uploaded document: the raw bytes plus the declared
// format. Extractors treat it as read-only; it exists only for the duration
// of a single Extract call.
type RawDocument struct {
	Name   string `json:"name,omitempty"`
	Format Format `json:"format"`
	Data   []byte `json:"-"`
}
