package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"todolist/config"
	"todolist/infras/otel"
	"todolist/internal/domains/todo/model/dto"
	"todolist/shared/constant"
	"todolist/shared/failure"
	"todolist/transport/http/response"
)

const todosPath = "/todos"

// ErrUnreadableBody marks a 2xx response whose body could not be decoded.
var ErrUnreadableBody = errors.New("unreadable response body")

// Client talks to the todo REST surface. Non-2xx responses come back as *failure.Failure
// carrying the response status and the server's error body. Writes are decided by the
// status alone; an undecodable 2xx body is logged and the zero value returned.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	otel       otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) *Client {
	return NewWithHTTPClient(cfg.Client.BaseURL, cfg.App.APIKey, http.DefaultClient, otel)
}

func NewWithHTTPClient(baseURL, apiKey string, httpClient *http.Client, otel otel.Otel) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
		otel:       otel,
	}
}

func (c *Client) List(ctx context.Context) (res []dto.TodoResponse, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelClientScopeName, constant.OtelClientScopeName+".List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = c.do(ctx, http.MethodGet, todosPath, nil, &res)
	if err != nil {
		return nil, err
	}

	scope.SetAttribute("todo.count", len(res))

	return res, nil
}

func (c *Client) Create(ctx context.Context, title string) (res dto.TodoResponse, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelClientScopeName, constant.OtelClientScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = c.do(ctx, http.MethodPost, todosPath, dto.CreateTodoRequest{Title: title}, &res)
	if errors.Is(err, ErrUnreadableBody) {
		log.Warn().Err(err).Msg("todo created but response body was unreadable")

		return dto.TodoResponse{}, nil
	}

	return res, err
}

func (c *Client) Update(ctx context.Context, id int64, req dto.UpdateTodoRequest) (res dto.TodoResponse, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelClientScopeName, constant.OtelClientScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("todo.id", id)

	err = c.do(ctx, http.MethodPatch, todoPath(id), req, &res)
	if errors.Is(err, ErrUnreadableBody) {
		log.Warn().Err(err).Int64("todo_id", id).Msg("todo updated but response body was unreadable")

		return dto.TodoResponse{}, nil
	}

	return res, err
}

func (c *Client) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelClientScopeName, constant.OtelClientScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("todo.id", id)

	return c.do(ctx, http.MethodDelete, todoPath(id), nil, nil)
}

func todoPath(id int64) string {
	return todosPath + "/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}

		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	req.Header.Set(constant.RequestHeaderAccept, constant.ContentTypeJSON)

	if body != nil {
		req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	}

	if c.apiKey != "" {
		req.Header.Set(constant.RequestHeaderAPIKey, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeFailure(resp)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w: %w", method, path, ErrUnreadableBody, err)
	}

	return nil
}

func decodeFailure(resp *http.Response) error {
	fail := &failure.Failure{
		Code:    resp.StatusCode,
		Message: http.StatusText(resp.StatusCode),
	}

	var body response.Error
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		fail.Message = body.Error
		fail.Details = body.Details
	}

	return fail
}
