package svg

import (
	"net/url"
	"strings"
)

// URL is the parsed form of an href or url(...) reference.
type URL struct {
	Path     string
	Fragment string
}

// ParseURL accepts "#id", "url(#id)" and absolute or relative URLs.
func ParseURL(s string) URL {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "url(") && strings.HasSuffix(s, ")") {
		s = strings.Trim(s[len("url("):len(s)-1], ` "'`)
	}
	if s == "" {
		return URL{}
	}
	u, err := url.Parse(s)
	if err != nil {
		path, frag, _ := strings.Cut(s, "#")
		return URL{Path: path, Fragment: frag}
	}
	path := u.Path
	if u.Scheme != "" || u.Host != "" {
		path = strings.TrimSuffix(u.String(), "#"+u.EscapedFragment())
	}
	return URL{Path: path, Fragment: u.Fragment}
}
