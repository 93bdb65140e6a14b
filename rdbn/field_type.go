package rdbn

import (
	"fmt"

	"github.com/arloliu/cfgbin/errs"
)

// FieldType is the 16-bit type tag of an RDBN field.
type FieldType int16

const (
	FieldAbilityData FieldType = 0x00 // opaque bytes
	FieldEnhanceData FieldType = 0x01 // opaque bytes
	FieldStatusRate  FieldType = 0x02 // opaque bytes
	FieldBool        FieldType = 0x03 // 32-bit boolean
	FieldByte        FieldType = 0x04
	FieldShort       FieldType = 0x05
	FieldInt         FieldType = 0x06
	FieldActType     FieldType = 0x09 // 16-bit
	FieldFlag        FieldType = 0x0A // 32-bit
	FieldFloat       FieldType = 0x0D
	FieldHash        FieldType = 0x0F // unsigned 32-bit
	FieldRateMatrix  FieldType = 0x12 // four floats
	FieldPosition    FieldType = 0x13 // four floats
	FieldString      FieldType = 0x14 // string offset or plain identifier
	FieldDataTuple   FieldType = 0x15 // two shorts
)

// ParseFieldType validates a raw type tag.
//
// Returns:
//   - FieldType: The known tag
//   - error: ErrUnsupportedFieldType for any tag without a decoding rule
func ParseFieldType(tag int16) (FieldType, error) {
	switch t := FieldType(tag); t {
	case FieldAbilityData, FieldEnhanceData, FieldStatusRate,
		FieldBool, FieldByte, FieldShort, FieldInt,
		FieldActType, FieldFlag, FieldFloat, FieldHash,
		FieldRateMatrix, FieldPosition, FieldString, FieldDataTuple:
		return t, nil
	default:
		return 0, fmt.Errorf("%w: 0x%X", errs.ErrUnsupportedFieldType, tag)
	}
}

// Width returns the number of bytes one value of this type occupies.
// Opaque byte fields take their declared size.
func (t FieldType) Width(declaredSize int32) int {
	switch t {
	case FieldAbilityData, FieldEnhanceData, FieldStatusRate:
		return int(declaredSize)
	case FieldByte:
		return 1
	case FieldShort, FieldActType:
		return 2
	case FieldRateMatrix, FieldPosition:
		return 16
	default:
		return 4
	}
}

func (t FieldType) String() string {
	switch t {
	case FieldAbilityData:
		return "AbilityData"
	case FieldEnhanceData:
		return "EnhanceData"
	case FieldStatusRate:
		return "StatusRate"
	case FieldBool:
		return "Bool"
	case FieldByte:
		return "Byte"
	case FieldShort:
		return "Short"
	case FieldInt:
		return "Int"
	case FieldActType:
		return "ActType"
	case FieldFlag:
		return "Flag"
	case FieldFloat:
		return "Float"
	case FieldHash:
		return "Hash"
	case FieldRateMatrix:
		return "RateMatrix"
	case FieldPosition:
		return "Position"
	case FieldString:
		return "String"
	case FieldDataTuple:
		return "DataTuple"
	default:
		return fmt.Sprintf("Unknown(0x%X)", int16(t))
	}
}

// FieldTypeCategory is the advisory category tag of an RDBN field.
// It does not influence decoding; unknown values are preserved as is.
type FieldTypeCategory int16

const (
	CategoryPrimitive FieldTypeCategory = 1
	CategorySpecial   FieldTypeCategory = 2
	CategoryComposite FieldTypeCategory = 3
)

func (c FieldTypeCategory) String() string {
	switch c {
	case CategoryPrimitive:
		return "Primitive"
	case CategorySpecial:
		return "Special"
	case CategoryComposite:
		return "Composite"
	default:
		return fmt.Sprintf("Unknown(%d)", int16(c))
	}
}
