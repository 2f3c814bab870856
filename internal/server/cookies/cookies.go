// Package cookies sets, reads and clears the session cookie with one fixed
// set of attributes.
package cookies

import (
	"net/http"
	"time"
)

// Jar writes cookies that are HttpOnly, SameSite=Strict, scoped to "/" and
// Secure only when secure is set.
type Jar struct {
	secure bool
	maxAge time.Duration
}

func New(secure bool, maxAge time.Duration) *Jar {
	return &Jar{secure: secure, maxAge: maxAge}
}

func (j *Jar) cookie(name, value string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(j.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   j.secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// Set attaches name=value to the response.
func (j *Jar) Set(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, j.cookie(name, value))
}

// Clear expires the named cookie. Attributes mirror Set; clients ignore a
// removal whose path or flags differ from the original cookie.
func (j *Jar) Clear(w http.ResponseWriter, name string) {
	c := j.cookie(name, "")
	c.MaxAge = -1
	c.Expires = time.Unix(0, 0)
	http.SetCookie(w, c)
}

// Get returns the named cookie value from the request.
func (j *Jar) Get(r *http.Request, name string) (string, bool) {
	c, err := r.Cookie(name)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}
