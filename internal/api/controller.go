// Package api exposes the visualizer over HTTP with gin: option lists,
// run creation, run lookup and a Server-Sent Events playback stream.
package api

import "github.com/gin-gonic/gin"

// Controller registers a group of routes.
type Controller interface {
	RegisterPublic(*gin.RouterGroup)
}
