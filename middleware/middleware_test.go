package middleware

import (
	"github.com/spetersoncode/flux"
)

var counter = flux.Pure(func(n int, a flux.Action) int {
	switch a.Type() {
	case "INCREMENT":
		return n + 1
	case "ADD":
		return n + a.(flux.Plain).Payload.(int)
	}
	return n
})

func newStore(mws ...flux.Middleware[int]) (flux.Store[int], error) {
	return flux.New(counter, flux.WithEnhancer(flux.ApplyMiddleware(mws...)))
}
