package enbacs

import (
	"strconv"
	"strings"
)

// paramPath returns the device path for a scalar parameter, or "" if the
// model has no entry for it.
func paramPath(model DataModel, name ParamName) string {
	p, ok := model.GetParameter(name)
	if !ok {
		return ""
	}
	return p.Path
}

// lookupByPath finds the scalar parameter whose device path matches path.
// GetParameterValuesResponse entries arrive keyed by path, not by the
// model's symbolic ParamName, so every read handler that processes a
// response needs this reverse lookup.
func lookupByPath(model DataModel, path string) (ParamName, Parameter, bool) {
	for _, name := range model.AllParamNames() {
		p, ok := model.GetParameter(name)
		if ok && p.Path == path {
			return name, p, true
		}
	}
	return "", Parameter{}, false
}

// parseObjectName splits "Template.N" into its template and instance
// number, the inverse of ObjectName.
func parseObjectName(full string) (ObjectTemplate, int, bool) {
	idx := strings.LastIndex(full, ".")
	if idx < 0 {
		return "", 0, false
	}
	n, err := strconv.Atoi(full[idx+1:])
	if err != nil {
		return "", 0, false
	}
	return ObjectTemplate(full[:idx]), n, true
}

// intFromNative best-effort converts a native scalar value (as stored by
// ParamNumPLMNs) to an int, treating anything unparseable as zero.
func intFromNative(v interface{}) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case string:
		parsed, err := strconv.Atoi(n)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}
