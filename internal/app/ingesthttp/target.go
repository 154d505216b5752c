package ingesthttp

import "strings"

// Params — параметры query-строки. nil-значение означает ключ без '='.
type Params map[string]*string

// Get возвращает значение ключа; ok=false, если ключа нет или у него нет значения.
func (p Params) Get(key string) (string, bool) {
	v, ok := p[key]
	if !ok || v == nil {
		return "", false
	}
	return *v, true
}

// Target — разобранная цель запроса: путь и плоские параметры.
type Target struct {
	Route  string
	Params Params
}

// ParseTarget делит сырую цель запроса по первому '?' на путь и параметры.
// Значения не декодируются, пустые сегменты ("a=1&&b", хвостовой '&') отбрасываются,
// при повторе ключа побеждает последнее вхождение.
func ParseTarget(raw string) Target {
	route, query, _ := strings.Cut(raw, "?")
	params := Params{}

	for _, seg := range strings.Split(query, "&") {
		if seg == "" {
			continue
		}
		key, val, hasVal := strings.Cut(seg, "=")
		if !hasVal {
			params[key] = nil
			continue
		}
		params[key] = &val
	}

	return Target{Route: route, Params: params}
}
