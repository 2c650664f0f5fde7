package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	charmlog "github.com/charmbracelet/log"

	"github.com/chiply/cn-diagrams/internal/config"
	"github.com/chiply/cn-diagrams/internal/graph"
	_ "github.com/chiply/cn-diagrams/internal/handler" // register edit operations
	"github.com/chiply/cn-diagrams/internal/logger"
	"github.com/chiply/cn-diagrams/internal/parser"
	"github.com/chiply/cn-diagrams/internal/registry"
	"github.com/chiply/cn-diagrams/internal/result"
)

// Actions a request body may ask for.
const (
	ActionParse = "parse"
	ActionEdit  = "edit"
)

// LambdaEvent is the invocation payload (e.g. from API Gateway).
type LambdaEvent struct {
	Body     string `json:"body"` // Request JSON (raw or base64 if isBase64)
	IsBase64 bool   `json:"isBase64,omitempty"`
}

// Request is the decoded event body.
type Request struct {
	Action string          `json:"action"`
	Text   string          `json:"text"`
	Op     string          `json:"op,omitempty"`
	Params json.RawMessage `json:"params,omitempty"`
}

// LambdaResponse is returned to the client (API Gateway).
type LambdaResponse struct {
	StatusCode int                 `json:"statusCode"`
	Parse      *result.ParseResult `json:"parse,omitempty"`
	Edit       *result.EditResult  `json:"edit,omitempty"`
	Errors     []result.Error      `json:"errors,omitempty"`
}

// APIGatewayResponse is the shape expected by API Gateway proxy integration (body = JSON string).
type APIGatewayResponse struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers,omitempty"`
	Body       string            `json:"body"`
}

type app struct {
	cfg config.Config
	log *charmlog.Logger
}

func (a *app) handler(ctx context.Context, event LambdaEvent) (APIGatewayResponse, error) {
	ctx = logger.WithContext(ctx, a.log)
	out := LambdaResponse{StatusCode: 200}

	body := event.Body
	if event.IsBase64 {
		dec, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return fail(400, result.NewError(result.TypeInvalidInput, "invalid base64 body: "+err.Error(), "")), nil
		}
		body = string(dec)
	}

	var req Request
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		return fail(400, result.NewError(result.TypeInvalidJSON, "invalid request JSON: "+err.Error(), "")), nil
	}

	switch req.Action {
	case ActionParse:
		res := a.parse(req.Text)
		out.Parse = &res
	case ActionEdit:
		res, err := registry.Apply(ctx, req.Op, req.Text, req.Params)
		if errors.Is(err, registry.ErrUnknownOperation) {
			return fail(422, result.NewError(result.TypeUnknownOperation, err.Error(), "")), nil
		}
		if err != nil {
			return fail(400, result.NewError(result.TypeInvalidInput, err.Error(), "")), nil
		}
		parsed := a.parse(res.Text)
		out.Edit = &res
		out.Parse = &parsed
	default:
		return fail(400, result.NewError(result.TypeInvalidInput, "unknown action "+req.Action,
			`Set "action" to "parse" or "edit"`)), nil
	}
	a.log.Debug("handled", "action", req.Action, "op", req.Op)
	return wrap(out), nil
}

func (a *app) parse(text string) result.ParseResult {
	d := parser.New(a.cfg.ParserOptions()).Parse(text)
	return result.FromDiagram(d, graph.Project(d, a.cfg.GraphOptions()))
}

func fail(status int, e result.Error) APIGatewayResponse {
	return wrap(LambdaResponse{StatusCode: status, Errors: []result.Error{e}})
}

func wrap(out LambdaResponse) APIGatewayResponse {
	bodyBytes, _ := json.Marshal(out)
	return APIGatewayResponse{
		StatusCode: out.StatusCode,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(bodyBytes),
	}
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		logger.Default.Fatal("load config", "err", err)
	}
	level, _ := logger.ParseLevel(cfg.LogLevel)
	a := &app{cfg: cfg, log: logger.NewJSON(os.Stderr, level)}
	lambda.Start(a.handler)
}
