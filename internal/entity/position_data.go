package entity

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type TransactionType string

const (
	TransactionTypeEntry TransactionType = "entry"
	TransactionTypeExit  TransactionType = "exit"
)

type EntryType string

const (
	EntryTypeInitial     EntryType = "initial"
	EntryTypeAverageDown EntryType = "average_down"
)

type ExitType string

const (
	ExitTypeFull    ExitType = "full"
	ExitTypePartial ExitType = "partial"
)

// PositionData tags a trade record as one leg of a multi-leg position.
type PositionData struct {
	PositionID      string          `json:"positionId"`
	TransactionType TransactionType `json:"transactionType"`
	EntryType       EntryType       `json:"entryType,omitempty"`
	ExitType        ExitType        `json:"exitType,omitempty"`
	CurrentAvgPrice float64         `json:"currentAvgPrice,omitempty"`
	CurrentTotalLot int             `json:"currentTotalLot,omitempty"`
	AvgPrice        float64         `json:"avgPrice,omitempty"`
	TotalLot        int             `json:"totalLot,omitempty"`
	RemainingLot    *int            `json:"remainingLot,omitempty"`
	ParentPosition  string          `json:"parentPosition,omitempty"`
}

// IsEntry reports whether the leg adds lots to its position.
func (p *PositionData) IsEntry() bool {
	return p != nil && p.PositionID != "" && p.TransactionType == TransactionTypeEntry
}

// IsExit reports whether the leg removes lots from its position.
func (p *PositionData) IsExit() bool {
	return p != nil && p.PositionID != "" && p.TransactionType == TransactionTypeExit
}

// Clone returns a deep copy.
func (p PositionData) Clone() PositionData {
	if p.RemainingLot != nil {
		v := *p.RemainingLot
		p.RemainingLot = &v
	}
	return p
}

var errEmptyPositionData = errors.New("position data has no fields")

// SerializePositionData encodes p as JSON text. A nil p encodes as "".
func SerializePositionData(p *PositionData) (string, error) {
	if p == nil {
		return "", nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ParsePositionData decodes the text stored in the positionData column.
// Text starting with `{` that has a quoted key followed by a colon is JSON,
// with or without whitespace after the colon. Anything else is read with the
// legacy `{key=value, key2=value2}` grammar. Blank input yields (nil, nil).
func ParsePositionData(text string) (*PositionData, error) {
	s := strings.TrimSpace(text)
	if s == "" || s == "null" {
		return nil, nil
	}
	if strings.HasPrefix(s, "{") && strings.Contains(s, `":`) {
		var p PositionData
		if err := json.Unmarshal([]byte(s), &p); err != nil {
			return nil, fmt.Errorf("decode position data json: %w", err)
		}
		return &p, nil
	}
	return parseLegacyPositionData(s)
}

func parseLegacyPositionData(s string) (*PositionData, error) {
	s = strings.TrimPrefix(s, "{")
	s = strings.TrimSuffix(s, "}")

	var p PositionData
	n := 0
	for _, pair := range strings.Split(s, ",") {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if err := p.setLegacyField(key, coerceLegacyValue(strings.TrimSpace(raw))); err != nil {
			return nil, err
		}
		n++
	}
	if n == 0 {
		return nil, errEmptyPositionData
	}
	return &p, nil
}

// coerceLegacyValue maps the legacy textual values to typed ones.
func coerceLegacyValue(raw string) interface{} {
	switch raw {
	case "true":
		return true
	case "false":
		return false
	case "null", "":
		return nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}

func (p *PositionData) setLegacyField(key string, v interface{}) error {
	switch key {
	case "positionId":
		p.PositionID = legacyString(v)
	case "transactionType":
		p.TransactionType = TransactionType(legacyString(v))
	case "entryType":
		p.EntryType = EntryType(legacyString(v))
	case "exitType":
		p.ExitType = ExitType(legacyString(v))
	case "parentPosition":
		p.ParentPosition = legacyString(v)
	case "currentAvgPrice", "avgPrice":
		f, err := legacyFloat(key, v)
		if err != nil {
			return err
		}
		if key == "avgPrice" {
			p.AvgPrice = f
		} else {
			p.CurrentAvgPrice = f
		}
	case "currentTotalLot", "totalLot", "remainingLot":
		f, err := legacyFloat(key, v)
		if err != nil {
			return err
		}
		lot := int(f)
		switch key {
		case "currentTotalLot":
			p.CurrentTotalLot = lot
		case "totalLot":
			p.TotalLot = lot
		default:
			if v != nil {
				p.RemainingLot = &lot
			}
		}
	}
	return nil
}

func legacyString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return fmt.Sprint(v)
}

func legacyFloat(key string, v interface{}) (float64, error) {
	switch t := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return t, nil
	}
	return 0, fmt.Errorf("legacy position data: %s is not numeric: %v", key, v)
}
