package tiff

// Tag identifies a TIFF directory entry.
type Tag uint16

// Baseline TIFF 6.0 tags.
const (
	TagNewSubfileType  Tag = 254
	TagImageWidth      Tag = 256
	TagImageLength     Tag = 257
	TagBitsPerSample   Tag = 258
	TagCompression     Tag = 259
	TagPhotometric     Tag = 262
	TagStripOffsets    Tag = 273
	TagOrientation     Tag = 274
	TagSamplesPerPixel Tag = 277
	TagRowsPerStrip    Tag = 278
	TagStripByteCounts Tag = 279
	TagPlanarConfig    Tag = 284
	TagSoftware        Tag = 305
)

// TIFF/EP and DNG extension tags.
const (
	TagCFARepeatPatternDim    Tag = 33421
	TagCFAPattern             Tag = 33422
	TagDNGVersion             Tag = 50706
	TagDNGBackwardVersion     Tag = 50707
	TagUniqueCameraModel      Tag = 50708
	TagColorMatrix1           Tag = 50721
	TagColorMatrix2           Tag = 50722
	TagCalibrationIlluminant1 Tag = 50778
	TagCalibrationIlluminant2 Tag = 50779
)

// Field types from the TIFF 6.0 specification, section 2.
const (
	TypeByte      = 1
	TypeASCII     = 2
	TypeShort     = 3
	TypeLong      = 4
	TypeRational  = 5
	TypeSByte     = 6
	TypeUndefined = 7
	TypeSShort    = 8
	TypeSLong     = 9
	TypeSRational = 10
	TypeFloat     = 11
	TypeDouble    = 12
)

// typeSize maps a field type to the byte width of a single value.
// A zero entry means the type is unknown.
var typeSize = [...]int{
	TypeByte:      1,
	TypeASCII:     1,
	TypeShort:     2,
	TypeLong:      4,
	TypeRational:  8,
	TypeSByte:     1,
	TypeUndefined: 1,
	TypeSShort:    2,
	TypeSLong:     4,
	TypeSRational: 8,
	TypeFloat:     4,
	TypeDouble:    8,
}

// Well-known values for the tags the DNG writer emits.
const (
	CompressionNone    = 1
	PhotometricCFA     = 32803
	OrientationTopLeft = 1
	PlanarConfigContig = 1
)
