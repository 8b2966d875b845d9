// The container entrypoint of the prediction function. Invoked through the
// public function URL; the model loads once per execution environment and is
// reused across invocations.
package main

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"

	"github.com/wcheek/tensorstack/pkg/handler"
	"github.com/wcheek/tensorstack/pkg/model"
)

var (
	once    sync.Once
	h       *handler.Handler
	initErr error
)

func initOnce(ctx context.Context) {
	loader, err := model.NewLoader(ctx, model.LoaderOptionsFromEnv())
	if err != nil {
		initErr = err
		return
	}
	h = &handler.Handler{Models: loader}
}

func handle(ctx context.Context, req events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	ctx = logr.NewContext(ctx, stdr.New(log.Default()))
	once.Do(func() { initOnce(ctx) })
	if initErr != nil {
		return events.LambdaFunctionURLResponse{}, initErr
	}

	body, err := h.Predict(ctx, req.QueryStringParameters[handler.QueryParam])
	if err != nil {
		// unhandled: the platform answers with its generic error response
		return events.LambdaFunctionURLResponse{}, err
	}
	return events.LambdaFunctionURLResponse{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			"Access-Control-Allow-Origin": "*",
			"Content-Type":                "text/plain",
		},
		Body: body,
	}, nil
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	lambda.Start(handle)
}
