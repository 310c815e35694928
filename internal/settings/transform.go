package settings

import (
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// composeData builds the composite settings object for a plugin:
// schema property defaults first, user values applied over them.
//
// Plain values and objects overwrite. When the schema declares
// TransformKey, an array value merges with the default array
// element-wise by the "name" member: user entries replace same-named
// defaults in place and new entries append in user order.
func composeData(schema, userRaw []byte) ([]byte, error) {
	if len(schema) > 0 && !gjson.ValidBytes(schema) {
		return nil, ErrInvalidSchema
	}

	out := []byte(`{}`)
	var err error

	props := gjson.GetBytes(schema, "properties")
	if props.IsObject() {
		props.ForEach(func(key, val gjson.Result) bool {
			def := val.Get("default")
			if def.Exists() {
				out, err = sjson.SetRawBytes(out, escapeKey(key.String()), []byte(def.Raw))
			}
			return err == nil
		})
		if err != nil {
			return nil, err
		}
	}

	if len(strings.TrimSpace(string(userRaw))) == 0 {
		return out, nil
	}
	if !gjson.ValidBytes(userRaw) {
		return nil, ErrInvalidSettings
	}

	transform := gjson.GetBytes(schema, escapeKey(TransformKey)).Bool()

	gjson.ParseBytes(userRaw).ForEach(func(key, val gjson.Result) bool {
		path := escapeKey(key.String())
		if transform && val.IsArray() {
			if cur := gjson.GetBytes(out, path); cur.IsArray() {
				out, err = sjson.SetRawBytes(out, path, mergeArraysByName(cur, val))
				return err == nil
			}
		}
		out, err = sjson.SetRawBytes(out, path, []byte(val.Raw))
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// mergeArraysByName merges override entries into base by their "name"
// member. Entries without a name are appended as-is.
func mergeArraysByName(base, override gjson.Result) []byte {
	var raws []string
	index := make(map[string]int)

	base.ForEach(func(_, item gjson.Result) bool {
		if name := item.Get("name").String(); name != "" {
			index[name] = len(raws)
		}
		raws = append(raws, item.Raw)
		return true
	})

	override.ForEach(func(_, item gjson.Result) bool {
		name := item.Get("name").String()
		if i, ok := index[name]; ok && name != "" {
			raws[i] = item.Raw
			return true
		}
		if name != "" {
			index[name] = len(raws)
		}
		raws = append(raws, item.Raw)
		return true
	})

	return []byte("[" + strings.Join(raws, ",") + "]")
}
