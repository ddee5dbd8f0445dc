// Package exiftags decodes the EXIF block of a JPEG or TIFF stream into a flat
// map of printable tag values.
//
// Tag names carry the IFD they were read from as a prefix:
//
//	Image <name>             IFD0
//	EXIF <name>              Exif sub-IFD
//	GPS <name>               GPS sub-IFD
//	Interoperability <name>  Interoperability sub-IFD
//	Thumbnail <name>         IFD1
//
// Maker notes and thumbnail image data are never decoded.
package exiftags
