package controllers

import "github.com/shashiranjanraj/souq/pkg/ctx"

// respond writes data as a 200 envelope, or the mapped error.
func respond[T any](c *ctx.Context, data T, err error) {
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(data)
}

func created[T any](c *ctx.Context, data T, err error) {
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(data)
}

func removed(c *ctx.Context, message string, err error) {
	if err != nil {
		fail(c, err)
		return
	}
	c.Message(message, nil)
}
