package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// The backend renders several container fields from environment variables,
// so booleans and numbers may arrive as JSON strings. The flex types accept
// either form and always marshal to the native JSON type.

// FlexString decodes any JSON scalar into its string form.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	*f = FlexString(data)
	return nil
}

func (f FlexString) String() string {
	return string(f)
}

// FlexBool decodes true/false, "true"/"false", "1"/"0", "yes"/"no".
type FlexBool bool

func (f *FlexBool) UnmarshalJSON(data []byte) error {
	var raw FlexString
	if err := raw.UnmarshalJSON(data); err != nil {
		return err
	}
	b, err := ParseBool(string(raw))
	if err != nil {
		return err
	}
	*f = FlexBool(b)
	return nil
}

func (f FlexBool) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(f))
}

// ParseBool is strconv.ParseBool plus yes/no/on/off and empty as false.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "0", "false", "no", "off", "f", "n":
		return false, nil
	case "1", "true", "yes", "on", "t", "y":
		return true, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}

// FlexInt decodes 6, "6" and "" (as zero).
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	var raw FlexString
	if err := raw.UnmarshalJSON(data); err != nil {
		return err
	}
	s := strings.TrimSpace(string(raw))
	if s == "" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid integer %q", s)
	}
	*f = FlexInt(n)
	return nil
}

func (f FlexInt) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(f))
}
