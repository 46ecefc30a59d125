package internal

import (
	"fmt"
	"github.com/mitchellh/reflectwalk"
	"reflect"
	"strings"
)

// SettingInfo is the reflected metadata of one toggleable render setting.
type SettingInfo struct {
	Field string // Go field name in RenderSettings
	Name  string // Display name
	Key   string // Shortcut key
	Value bool
}

// settingsWalker collects the ui-tagged boolean fields of the walked struct.
type settingsWalker struct {
	found []SettingInfo
}

func (w *settingsWalker) Struct(_ reflect.Value) error {
	return nil
}

func (w *settingsWalker) StructField(field reflect.StructField, value reflect.Value) error {
	tag, ok := field.Tag.Lookup("ui")
	if !ok || field.Type.Kind() != reflect.Bool {
		return nil
	}
	name, key, ok := strings.Cut(tag, ",")
	if !ok || name == "" || key == "" {
		return fmt.Errorf("malformed ui tag %q on %s", tag, field.Name)
	}
	w.found = append(w.found, SettingInfo{Field: field.Name, Name: name, Key: key, Value: value.Bool()})
	return nil
}

// DescribeSettings lists the toggleable settings in declaration order.
// Remember that reflect is relatively slow: do not call it every frame.
func DescribeSettings(s *RenderSettings) []SettingInfo {
	w := &settingsWalker{}
	if err := reflectwalk.Walk(s, w); err != nil {
		panic(err) // Shouldn't happen (only on a bad struct tag)
	}
	return w.found
}

// FindSetting returns the setting bound to the given shortcut key.
func FindSetting(s *RenderSettings, key string) (SettingInfo, bool) {
	for _, info := range DescribeSettings(s) {
		if strings.EqualFold(info.Key, key) {
			return info, true
		}
	}
	return SettingInfo{}, false
}

// ToggleSetting flips the setting bound to the given shortcut key, returning its new state.
func ToggleSetting(s *RenderSettings, key string) (SettingInfo, bool) {
	info, ok := FindSetting(s, key)
	if !ok {
		return info, false
	}
	info.Value = !info.Value
	reflect.ValueOf(s).Elem().FieldByName(info.Field).SetBool(info.Value)
	return info, true
}

// ControlsText renders the settings as "Name: value [Key]" lines.
func ControlsText(s *RenderSettings) string {
	var sb strings.Builder
	for _, info := range DescribeSettings(s) {
		_, _ = fmt.Fprintf(&sb, "%s: %t [%s]\n", info.Name, info.Value, info.Key)
	}
	return sb.String()
}
