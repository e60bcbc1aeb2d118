// Package obs talks to OBS Studio over the obs-websocket v5 protocol:
// it reads the capture source's crop/transform to build the coordinate
// mapping, and drives image sources that render the click indicators.
package obs

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// obs-websocket v5 op codes.
const (
	opHello           = 0
	opIdentify        = 1
	opIdentified      = 2
	opEvent           = 5
	opRequest         = 6
	opRequestResponse = 7
)

const rpcVersion = 1

// Caller issues one obs-websocket request and decodes its response. The
// renderer and transform reader depend on this interface so they can be
// tested against a fake.
type Caller interface {
	Call(requestType string, requestData any, responseData any) error
}

// Client is a synchronous obs-websocket v5 client. It is driven from the
// single tick loop and performs no internal concurrency.
type Client struct {
	conn   *websocket.Conn
	log    *zap.Logger
	nextID int
}

type envelope struct {
	Op int             `json:"op"`
	D  json.RawMessage `json:"d"`
}

type helloData struct {
	ObsWebSocketVersion string `json:"obsWebSocketVersion"`
	RPCVersion          int    `json:"rpcVersion"`
	Authentication      *struct {
		Challenge string `json:"challenge"`
		Salt      string `json:"salt"`
	} `json:"authentication"`
}

type identifyData struct {
	RPCVersion         int    `json:"rpcVersion"`
	Authentication     string `json:"authentication,omitempty"`
	EventSubscriptions int    `json:"eventSubscriptions"`
}

type requestData struct {
	RequestType string `json:"requestType"`
	RequestID   string `json:"requestId"`
	RequestData any    `json:"requestData,omitempty"`
}

type responseData struct {
	RequestType   string `json:"requestType"`
	RequestID     string `json:"requestId"`
	RequestStatus struct {
		Result  bool   `json:"result"`
		Code    int    `json:"code"`
		Comment string `json:"comment"`
	} `json:"requestStatus"`
	ResponseData json.RawMessage `json:"responseData"`
}

// Dial connects and completes the Hello/Identify handshake. Events are
// not subscribed to; the client is request/response only.
func Dial(ctx context.Context, url, password string, log *zap.Logger) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to obs-websocket at %s: %w", url, err)
	}

	c := &Client{conn: conn, log: log}
	if err := c.identify(password); err != nil {
		conn.Close()
		return nil, err
	}
	return c, nil
}

func (c *Client) identify(password string) error {
	var env envelope
	if err := c.conn.ReadJSON(&env); err != nil {
		return fmt.Errorf("failed to read Hello: %w", err)
	}
	if env.Op != opHello {
		return fmt.Errorf("expected Hello (op %d), got op %d", opHello, env.Op)
	}
	var hello helloData
	if err := json.Unmarshal(env.D, &hello); err != nil {
		return fmt.Errorf("failed to parse Hello: %w", err)
	}

	ident := identifyData{RPCVersion: rpcVersion}
	if hello.Authentication != nil {
		if password == "" {
			return fmt.Errorf("obs-websocket requires a password but none is configured")
		}
		ident.Authentication = authToken(password, hello.Authentication.Salt, hello.Authentication.Challenge)
	}
	if err := c.writeOp(opIdentify, ident); err != nil {
		return fmt.Errorf("failed to send Identify: %w", err)
	}

	for {
		if err := c.conn.ReadJSON(&env); err != nil {
			return fmt.Errorf("failed to read Identified: %w", err)
		}
		if env.Op == opIdentified {
			break
		}
	}

	c.log.Info("connected to obs-websocket",
		zap.String("version", hello.ObsWebSocketVersion))
	return nil
}

// authToken computes the documented challenge response:
// base64(sha256(base64(sha256(password+salt)) + challenge)).
func authToken(password, salt, challenge string) string {
	secret := sha256.Sum256([]byte(password + salt))
	secretB64 := base64.StdEncoding.EncodeToString(secret[:])
	auth := sha256.Sum256([]byte(secretB64 + challenge))
	return base64.StdEncoding.EncodeToString(auth[:])
}

func (c *Client) writeOp(op int, d any) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return c.conn.WriteJSON(envelope{Op: op, D: raw})
}

// Call sends one request and blocks for its response, skipping any
// interleaved event messages. responseData may be nil when the caller
// only cares about success.
func (c *Client) Call(requestType string, reqData any, respData any) error {
	c.nextID++
	id := fmt.Sprintf("%d", c.nextID)

	if err := c.writeOp(opRequest, requestData{
		RequestType: requestType,
		RequestID:   id,
		RequestData: reqData,
	}); err != nil {
		return fmt.Errorf("failed to send %s: %w", requestType, err)
	}

	for {
		var env envelope
		if err := c.conn.ReadJSON(&env); err != nil {
			return fmt.Errorf("failed to read %s response: %w", requestType, err)
		}
		if env.Op != opRequestResponse {
			continue
		}
		var resp responseData
		if err := json.Unmarshal(env.D, &resp); err != nil {
			return fmt.Errorf("failed to parse %s response: %w", requestType, err)
		}
		if resp.RequestID != id {
			continue
		}
		if !resp.RequestStatus.Result {
			return &RequestError{
				RequestType: requestType,
				Code:        resp.RequestStatus.Code,
				Comment:     resp.RequestStatus.Comment,
			}
		}
		if respData != nil && len(resp.ResponseData) > 0 {
			if err := json.Unmarshal(resp.ResponseData, respData); err != nil {
				return fmt.Errorf("failed to decode %s response data: %w", requestType, err)
			}
		}
		return nil
	}
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// RequestError is a request the OBS side rejected, carrying its status
// code and comment.
type RequestError struct {
	RequestType string
	Code        int
	Comment     string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("obs request %s failed: code %d (%s)", e.RequestType, e.Code, e.Comment)
}
