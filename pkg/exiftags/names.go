package exiftags

import "fmt"

type group int

const (
	groupImage group = iota
	groupExif
	groupGPS
	groupInterop
	groupThumbnail
)

func (g group) prefix() string {
	switch g {
	case groupExif:
		return "EXIF"
	case groupGPS:
		return "GPS"
	case groupInterop:
		return "Interoperability"
	case groupThumbnail:
		return "Thumbnail"
	default:
		return "Image"
	}
}

const (
	tagCompression     uint16 = 0x0103
	tagOrientation     uint16 = 0x0112
	tagResolutionUnit  uint16 = 0x0128
	tagExifOffset      uint16 = 0x8769
	tagGPSInfo         uint16 = 0x8825
	tagExposureProgram uint16 = 0x8822
	tagMeteringMode    uint16 = 0x9207
	tagFlash           uint16 = 0x9209
	tagMakerNote       uint16 = 0x927C
	tagInteropOffset   uint16 = 0xA005
)

// skipped tags are verbose or binary and are never decoded.
var skipped = map[uint16]bool{
	tagMakerNote: true,
}

// IFD0 and IFD1 share one table.
var imageNames = map[uint16]string{
	0x00FE:            "SubfileType",
	0x0100:            "ImageWidth",
	0x0101:            "ImageLength",
	0x0102:            "BitsPerSample",
	tagCompression:    "Compression",
	0x0106:            "PhotometricInterpretation",
	0x010E:            "ImageDescription",
	0x010F:            "Make",
	0x0110:            "Model",
	0x0111:            "StripOffsets",
	tagOrientation:    "Orientation",
	0x0115:            "SamplesPerPixel",
	0x0116:            "RowsPerStrip",
	0x0117:            "StripByteCounts",
	0x011A:            "XResolution",
	0x011B:            "YResolution",
	0x011C:            "PlanarConfiguration",
	tagResolutionUnit: "ResolutionUnit",
	0x0131:            "Software",
	0x0132:            "DateTime",
	0x013B:            "Artist",
	0x013E:            "WhitePoint",
	0x013F:            "PrimaryChromaticities",
	0x0201:            "JPEGInterchangeFormat",
	0x0202:            "JPEGInterchangeFormatLength",
	0x0211:            "YCbCrCoefficients",
	0x0213:            "YCbCrPositioning",
	0x0214:            "ReferenceBlackWhite",
	0x8298:            "Copyright",
	tagExifOffset:     "ExifOffset",
	tagGPSInfo:        "GPSInfo",
}

var exifNames = map[uint16]string{
	0x829A:             "ExposureTime",
	0x829D:             "FNumber",
	tagExposureProgram: "ExposureProgram",
	0x8824:             "SpectralSensitivity",
	0x8827:             "ISOSpeedRatings",
	0x8830:             "SensitivityType",
	0x8832:             "RecommendedExposureIndex",
	0x9000:             "ExifVersion",
	0x9003:             "DateTimeOriginal",
	0x9004:             "DateTimeDigitized",
	0x9010:             "OffsetTime",
	0x9011:             "OffsetTimeOriginal",
	0x9012:             "OffsetTimeDigitized",
	0x9101:             "ComponentsConfiguration",
	0x9102:             "CompressedBitsPerPixel",
	0x9201:             "ShutterSpeedValue",
	0x9202:             "ApertureValue",
	0x9203:             "BrightnessValue",
	0x9204:             "ExposureBiasValue",
	0x9205:             "MaxApertureValue",
	0x9206:             "SubjectDistance",
	tagMeteringMode:    "MeteringMode",
	0x9208:             "LightSource",
	tagFlash:           "Flash",
	0x920A:             "FocalLength",
	0x9214:             "SubjectArea",
	tagMakerNote:       "MakerNote",
	0x9286:             "UserComment",
	0x9290:             "SubSecTime",
	0x9291:             "SubSecTimeOriginal",
	0x9292:             "SubSecTimeDigitized",
	0xA000:             "FlashPixVersion",
	0xA001:             "ColorSpace",
	0xA002:             "ExifImageWidth",
	0xA003:             "ExifImageLength",
	tagInteropOffset:   "InteroperabilityOffset",
	0xA20E:             "FocalPlaneXResolution",
	0xA20F:             "FocalPlaneYResolution",
	0xA210:             "FocalPlaneResolutionUnit",
	0xA217:             "SensingMethod",
	0xA300:             "FileSource",
	0xA301:             "SceneType",
	0xA401:             "CustomRendered",
	0xA402:             "ExposureMode",
	0xA403:             "WhiteBalance",
	0xA404:             "DigitalZoomRatio",
	0xA405:             "FocalLengthIn35mmFilm",
	0xA406:             "SceneCaptureType",
	0xA407:             "GainControl",
	0xA408:             "Contrast",
	0xA409:             "Saturation",
	0xA40A:             "Sharpness",
	0xA40C:             "SubjectDistanceRange",
	0xA420:             "ImageUniqueID",
	0xA430:             "CameraOwnerName",
	0xA431:             "BodySerialNumber",
	0xA432:             "LensSpecification",
	0xA433:             "LensMake",
	0xA434:             "LensModel",
	0xA435:             "LensSerialNumber",
}

var gpsNames = map[uint16]string{
	0x0000: "GPSVersionID",
	0x0001: "GPSLatitudeRef",
	0x0002: "GPSLatitude",
	0x0003: "GPSLongitudeRef",
	0x0004: "GPSLongitude",
	0x0005: "GPSAltitudeRef",
	0x0006: "GPSAltitude",
	0x0007: "GPSTimeStamp",
	0x0008: "GPSSatellites",
	0x0009: "GPSStatus",
	0x000A: "GPSMeasureMode",
	0x000B: "GPSDOP",
	0x000C: "GPSSpeedRef",
	0x000D: "GPSSpeed",
	0x0010: "GPSImgDirectionRef",
	0x0011: "GPSImgDirection",
	0x0012: "GPSMapDatum",
	0x001B: "GPSProcessingMethod",
	0x001D: "GPSDate",
}

var interopNames = map[uint16]string{
	0x0001: "InteroperabilityIndex",
	0x0002: "InteroperabilityVersion",
}

func tagName(g group, id uint16) string {
	var names map[uint16]string
	switch g {
	case groupExif:
		names = exifNames
	case groupGPS:
		names = gpsNames
	case groupInterop:
		names = interopNames
	default:
		names = imageNames
	}
	if name, ok := names[id]; ok {
		return name
	}
	return fmt.Sprintf("Tag 0x%04X", id)
}

// Enumerated values rendered as text. Codes missing from a table render as
// their decimal value.
var enums = map[uint16]map[int64]string{
	tagCompression: {
		1:     "Uncompressed",
		2:     "CCITT 1D",
		3:     "T4/Group 3 Fax",
		4:     "T6/Group 4 Fax",
		5:     "LZW",
		6:     "JPEG (old-style)",
		7:     "JPEG",
		8:     "Adobe Deflate",
		9:     "JBIG B&W",
		10:    "JBIG Color",
		32766: "Next",
		32769: "Epson ERF Compressed",
		32771: "CCIRLEW",
		32773: "PackBits",
		32809: "Thunderscan",
		32895: "IT8CTPAD",
		32896: "IT8LW",
		32897: "IT8MP",
		32898: "IT8BL",
		32908: "PixarFilm",
		32909: "PixarLog",
		32946: "Deflate",
		32947: "DCS",
		34661: "JBIG",
		34676: "SGILog",
		34677: "SGILog24",
		34712: "JPEG 2000",
		34713: "Nikon NEF Compressed",
		65000: "Kodak DCR Compressed",
		65535: "Pentax PEF Compressed",
	},
	tagOrientation: {
		1: "Horizontal (normal)",
		2: "Mirrored horizontal",
		3: "Rotated 180",
		4: "Mirrored vertical",
		5: "Mirrored horizontal then rotated 90 CCW",
		6: "Rotated 90 CW",
		7: "Mirrored horizontal then rotated 90 CW",
		8: "Rotated 90 CCW",
	},
	tagResolutionUnit: {
		1: "Not Absolute",
		2: "Pixels/Inch",
		3: "Pixels/Centimeter",
	},
	tagExposureProgram: {
		0: "Unidentified",
		1: "Manual",
		2: "Program Normal",
		3: "Aperture Priority",
		4: "Shutter Priority",
		5: "Program Creative",
		6: "Program Action",
		7: "Portrait Mode",
		8: "Landscape Mode",
	},
	tagMeteringMode: {
		0:   "Unidentified",
		1:   "Average",
		2:   "CenterWeightedAverage",
		3:   "Spot",
		4:   "MultiSpot",
		5:   "Pattern",
		6:   "Partial",
		255: "other",
	},
	tagFlash: {
		0:  "Flash did not fire",
		1:  "Flash fired",
		5:  "Strobe return light not detected",
		7:  "Strobe return light detected",
		8:  "Flash did not fire",
		9:  "Flash fired, compulsory flash mode",
		13: "Flash fired, compulsory flash mode, return light not detected",
		15: "Flash fired, compulsory flash mode, return light detected",
		16: "Flash did not fire, compulsory flash mode",
		24: "Flash did not fire, auto mode",
		25: "Flash fired, auto mode",
		29: "Flash fired, auto mode, return light not detected",
		31: "Flash fired, auto mode, return light detected",
		32: "No flash function",
		65: "Flash fired, red-eye reduction mode",
		69: "Flash fired, red-eye reduction mode, return light not detected",
		71: "Flash fired, red-eye reduction mode, return light detected",
		73: "Flash fired, compulsory flash mode, red-eye reduction mode",
		77: "Flash fired, compulsory flash mode, red-eye reduction mode, return light not detected",
		79: "Flash fired, compulsory flash mode, red-eye reduction mode, return light detected",
		89: "Flash fired, auto mode, red-eye reduction mode",
		93: "Flash fired, auto mode, return light not detected, red-eye reduction mode",
		95: "Flash fired, auto mode, return light detected, red-eye reduction mode",
	},
}

// enumsFor returns the value table for a tag, if any. The Exif-only tables
// are not applied to IFD0/IFD1 tags that happen to share an ID.
func enumsFor(g group, id uint16) map[int64]string {
	switch id {
	case tagCompression, tagOrientation, tagResolutionUnit:
		if g != groupImage && g != groupThumbnail {
			return nil
		}
	case tagExposureProgram, tagMeteringMode, tagFlash:
		if g != groupExif {
			return nil
		}
	}
	return enums[id]
}
