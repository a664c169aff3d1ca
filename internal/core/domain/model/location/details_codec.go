package location

import (
	"encoding/json"
	"fmt"
)

// EncodeDetails serialises the kind-specific payload for a jsonb column.
// A location without details encodes as nil.
func EncodeDetails(d Details) ([]byte, error) {
	if d == nil {
		return nil, nil
	}
	return json.Marshal(d)
}

// DecodeDetails is the inverse of EncodeDetails; kind selects the variant.
func DecodeDetails(kind Kind, raw []byte) (Details, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil //nolint:nilnil // offices and custom locations have no details
	}

	var (
		d   Details
		err error
	)
	switch kind {
	case Warehouse:
		var w WarehouseDetails
		err = json.Unmarshal(raw, &w)
		d = w
	case PickupStation:
		var s StationDetails
		err = json.Unmarshal(raw, &s)
		d = s
	case Hub:
		var h HubDetails
		err = json.Unmarshal(raw, &h)
		d = h
	case Office, Custom:
		return nil, nil //nolint:nilnil // details are ignored for these kinds
	default:
		return nil, kind.Validate()
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s details: %w", kind, err)
	}
	return d, nil
}
