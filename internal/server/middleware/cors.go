package middleware

import (
	"fmt"
	"net/http"
	"regexp"

	"github.com/rs/cors"
)

// CORS allows cross-origin requests from origins matching any of the allowedOrigins regexes.
//
// Credentials are allowed, so the browser front-end can send the Authorization header.
// Callers only attach this middleware when ALLOWED_ORIGINS is set.
func CORS(allowedOrigins []string) (func(http.Handler) http.Handler, error) {
	patterns := make([]*regexp.Regexp, 0, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		re, err := regexp.Compile(origin)
		if err != nil {
			return nil, fmt.Errorf("invalid allowed origin %q: %w", origin, err)
		}
		patterns = append(patterns, re)
	}

	c := cors.New(cors.Options{
		AllowOriginFunc: func(origin string) bool {
			for _, re := range patterns {
				if re.MatchString(origin) {
					return true
				}
			}
			return false
		},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
		},
		AllowedHeaders:   []string{"Authorization", "Accept", "Content-Type"},
		AllowCredentials: true,
	})

	return c.Handler, nil
}
