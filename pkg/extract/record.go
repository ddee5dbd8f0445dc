package extract

// Columns is the header of the summary table, in output order.
var Columns = []string{
	"Name",
	"Image Type",
	"Width (pixels)",
	"Height (pixels)",
	"Camera Brand",
	"Camera Model",
	"Date Taken",
	"Shutter Speed (s)",
	"Aperture",
	"ISO Speed Rating",
	"Flash",
	"Exposure Program",
	"Focal Length (mm)",
	"Lens",
	"Creator",
}

// Record is one row of the summary table. Every field is non-empty once
// returned by an Extractor.
type Record struct {
	Name            string
	ImageType       string
	Width           string
	Height          string
	Brand           string
	Model           string
	DateTaken       string
	ShutterSpeed    string
	Aperture        string
	ISO             string
	Flash           string
	ExposureProgram string
	FocalLength     string
	Lens            string
	Creator         string
}

// Values returns the fields in the order of Columns.
func (r Record) Values() []string {
	return []string{
		r.Name,
		r.ImageType,
		r.Width,
		r.Height,
		r.Brand,
		r.Model,
		r.DateTaken,
		r.ShutterSpeed,
		r.Aperture,
		r.ISO,
		r.Flash,
		r.ExposureProgram,
		r.FocalLength,
		r.Lens,
		r.Creator,
	}
}
