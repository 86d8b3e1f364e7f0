package providers

import (
	"net/http"

	gohttp "github.com/km-arc/go-inject/framework/http"
)

func health(w http.ResponseWriter, _ *http.Request) {
	gohttp.NewResponse(w).Success(map[string]string{"status": "ok"})
}
