package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Skotchmaster/inventory_cart/internal/transport"
	"github.com/labstack/echo/v4"
)

// ErrorHandler renders every error as {"status":"error","error":"..."}.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if he.Message != nil {
			msg = fmt.Sprint(he.Message)
		} else {
			msg = http.StatusText(code)
		}
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(code)
	} else {
		werr = c.JSON(code, transport.Envelope{Status: "error", Error: msg})
	}
	if werr != nil {
		c.Logger().Error(werr)
	}
}

func success(payload any) transport.Envelope {
	return transport.Envelope{Status: "success", Payload: payload}
}
