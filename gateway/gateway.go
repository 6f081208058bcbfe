// Package gateway exposes the game engine over websockets. Clients send
// JSON requests ({id, op, sender, params}) and receive matching
// responses plus a live event feed for the games they subscribe to.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"quizpot/contract"
	"quizpot/sdk"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1 << 20
)

type Server struct {
	eng      *contract.Engine
	hub      *Hub
	upgrader websocket.Upgrader
}

func NewServer(eng *contract.Engine, hub *Hub) *Server {
	return &Server{
		eng: eng,
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

type request struct {
	ID     string          `json:"id,omitempty"`
	Op     string          `json:"op"`
	Sender string          `json:"sender,omitempty"`
	Params json.RawMessage `json:"params,omitempty"`
}

type response struct {
	ID     string     `json:"id,omitempty"`
	OK     bool       `json:"ok"`
	Result any        `json:"result,omitempty"`
	Error  *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Kind    string `json:"kind"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func fail(id string, err error) *response {
	body := &errorBody{Kind: "internal", Code: "Internal", Message: err.Error()}
	var engineErr *contract.Error
	if errors.As(err, &engineErr) {
		body.Kind = engineErr.Kind.String()
		body.Code = engineErr.Code
		body.Message = engineErr.Message()
	}
	return &response{ID: id, OK: false, Error: body}
}

// client is one websocket connection with its outbound queue and live
// subscriptions.
type client struct {
	conn *websocket.Conn
	send chan any
	subs []chan Event
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("gateway: upgrade failed: %v", err)
		return
	}
	// the request context dies when this handler returns; the connection
	// outlives it
	go s.serve(context.Background(), conn)
}

func (s *Server) serve(ctx context.Context, conn *websocket.Conn) {
	c := &client{conn: conn, send: make(chan any, 64)}
	done := make(chan struct{})

	go s.writeLoop(c, done)
	defer func() {
		close(done)
		for _, ch := range c.subs {
			s.hub.Unsubscribe(ch)
		}
		conn.Close()
	}()

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var req request
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("gateway: read failed: %v", err)
			}
			return
		}
		resp := s.dispatch(ctx, c, &req)
		select {
		case c.send <- resp:
		case <-done:
			return
		}
	}
}

func (s *Server) writeLoop(c *client, done chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func (s *Server) dispatch(ctx context.Context, c *client, req *request) *response {
	result, err := s.handle(ctx, c, req)
	if err != nil {
		return fail(req.ID, err)
	}
	return &response{ID: req.ID, OK: true, Result: result}
}

func decode[T any](raw json.RawMessage) (T, error) {
	var p T
	if len(raw) == 0 {
		return p, nil
	}
	err := json.Unmarshal(raw, &p)
	return p, err
}

// ---------- Request payloads ----------

type gameRef struct {
	Admin string `json:"admin"`
	Code  string `json:"code"`
}

type configParams struct {
	Treasury       string  `json:"treasury"`
	Authority      string  `json:"authority"`
	TreasuryFeeBps uint16  `json:"treasuryFeeBps"`
	NewTreasury    *string `json:"newTreasury,omitempty"`
	NewFeeBps      *uint16 `json:"newTreasuryFeeBps,omitempty"`
}

type createGameParams struct {
	Name           string `json:"name"`
	Code           string `json:"code"`
	Asset          string `json:"asset"`
	EntryFee       uint64 `json:"entryFee"`
	CommissionBps  uint16 `json:"commissionBps"`
	StartTime      int64  `json:"startTime"`
	EndTime        int64  `json:"endTime"`
	MaxWinners     uint8  `json:"maxWinners"`
	AllAreWinners  bool   `json:"allAreWinners"`
	Mode           string `json:"mode"`
	DonationAmount uint64 `json:"donationAmount"`
	AnswerRoot     string `json:"answerRoot"`
}

type updateGameParams struct {
	gameRef
	Name           *string `json:"name,omitempty"`
	EntryFee       *uint64 `json:"entryFee,omitempty"`
	CommissionBps  *uint16 `json:"commissionBps,omitempty"`
	StartTime      *int64  `json:"startTime,omitempty"`
	EndTime        *int64  `json:"endTime,omitempty"`
	MaxWinners     *uint8  `json:"maxWinners,omitempty"`
	AnswerRoot     *string `json:"answerRoot,omitempty"`
	DonationAmount *uint64 `json:"donationAmount,omitempty"`
}

type answerPayload struct {
	DisplayOrder uint8    `json:"displayOrder"`
	Answer       string   `json:"answer"`
	Salt         string   `json:"salt"`
	Proof        []string `json:"proof"`
}

type submitParams struct {
	gameRef
	FinishTime int64           `json:"finishTime"`
	Answers    []answerPayload `json:"answers"`
}

type declareParams struct {
	gameRef
	Winners []string `json:"winners"`
}

type playerRef struct {
	gameRef
	Player string `json:"player"`
}

func (s *Server) handle(ctx context.Context, c *client, req *request) (any, error) {
	switch req.Op {
	case "initConfig":
		p, err := decode[configParams](req.Params)
		if err != nil {
			return nil, err
		}
		return nil, s.eng.InitConfig(ctx, req.Sender, p.Treasury, p.Authority, p.TreasuryFeeBps)

	case "updateConfig":
		p, err := decode[configParams](req.Params)
		if err != nil {
			return nil, err
		}
		return nil, s.eng.UpdateConfig(ctx, req.Sender, p.NewTreasury, p.NewFeeBps)

	case "createGame":
		p, err := decode[createGameParams](req.Params)
		if err != nil {
			return nil, err
		}
		root, err := parseHash(p.AnswerRoot)
		if err != nil {
			return nil, err
		}
		mode := contract.EvenSplit
		if p.Mode == "decay" {
			mode = contract.Decay
		}
		return nil, s.eng.InitGame(ctx, req.Sender, contract.InitGameParams{
			Name:           p.Name,
			Code:           p.Code,
			Asset:          sdk.ParseAsset(p.Asset),
			EntryFee:       p.EntryFee,
			CommissionBps:  p.CommissionBps,
			StartTime:      p.StartTime,
			EndTime:        p.EndTime,
			MaxWinners:     p.MaxWinners,
			AllAreWinners:  p.AllAreWinners,
			Mode:           mode,
			DonationAmount: p.DonationAmount,
			AnswerRoot:     root,
		})

	case "updateGame":
		p, err := decode[updateGameParams](req.Params)
		if err != nil {
			return nil, err
		}
		upd := contract.UpdateGameParams{
			Name:           p.Name,
			EntryFee:       p.EntryFee,
			CommissionBps:  p.CommissionBps,
			StartTime:      p.StartTime,
			EndTime:        p.EndTime,
			MaxWinners:     p.MaxWinners,
			DonationAmount: p.DonationAmount,
		}
		if p.AnswerRoot != nil {
			root, err := parseHash(*p.AnswerRoot)
			if err != nil {
				return nil, err
			}
			upd.AnswerRoot = &root
		}
		return nil, s.eng.UpdateGame(ctx, req.Sender, p.Admin, p.Code, upd)

	case "startGame":
		p, err := decode[gameRef](req.Params)
		if err != nil {
			return nil, err
		}
		return nil, s.eng.StartGame(ctx, req.Sender, p.Admin, p.Code)

	case "joinGame":
		p, err := decode[gameRef](req.Params)
		if err != nil {
			return nil, err
		}
		return nil, s.eng.JoinGame(ctx, req.Sender, p.Admin, p.Code)

	case "submitAnswers":
		p, err := decode[submitParams](req.Params)
		if err != nil {
			return nil, err
		}
		answers := make([]contract.AnswerInput, 0, len(p.Answers))
		for _, a := range p.Answers {
			in := contract.AnswerInput{
				DisplayOrder: a.DisplayOrder,
				Answer:       a.Answer,
				Salt:         a.Salt,
				Proof:        make([][32]byte, 0, len(a.Proof)),
			}
			for _, node := range a.Proof {
				h, err := parseHash(node)
				if err != nil {
					return nil, err
				}
				in.Proof = append(in.Proof, h)
			}
			answers = append(answers, in)
		}
		return nil, s.eng.SubmitAnswers(ctx, req.Sender, p.Admin, p.Code, answers, p.FinishTime)

	case "endGame":
		p, err := decode[gameRef](req.Params)
		if err != nil {
			return nil, err
		}
		return nil, s.eng.EndGame(ctx, req.Sender, p.Admin, p.Code)

	case "declareWinners":
		p, err := decode[declareParams](req.Params)
		if err != nil {
			return nil, err
		}
		return nil, s.eng.DeclareWinners(ctx, req.Sender, p.Admin, p.Code, p.Winners)

	case "claimPrize":
		p, err := decode[gameRef](req.Params)
		if err != nil {
			return nil, err
		}
		return nil, s.eng.ClaimPrize(ctx, req.Sender, p.Admin, p.Code)

	case "closeGame":
		p, err := decode[gameRef](req.Params)
		if err != nil {
			return nil, err
		}
		return nil, s.eng.CloseGame(ctx, req.Sender, p.Admin, p.Code)

	case "closePlayerAccount":
		p, err := decode[gameRef](req.Params)
		if err != nil {
			return nil, err
		}
		return nil, s.eng.ClosePlayerAccount(ctx, req.Sender, p.Admin, p.Code)

	case "getGame":
		p, err := decode[gameRef](req.Params)
		if err != nil {
			return nil, err
		}
		g, err := s.eng.GetGame(ctx, p.Admin, p.Code)
		if err != nil {
			return nil, err
		}
		return viewGame(g), nil

	case "getPlayer":
		p, err := decode[playerRef](req.Params)
		if err != nil {
			return nil, err
		}
		rec, err := s.eng.GetPlayer(ctx, p.Admin, p.Code, p.Player)
		if err != nil {
			return nil, err
		}
		return viewPlayer(rec), nil

	case "getWinners":
		p, err := decode[gameRef](req.Params)
		if err != nil {
			return nil, err
		}
		w, err := s.eng.GetWinners(ctx, p.Admin, p.Code)
		if err != nil {
			return nil, err
		}
		return viewWinners(w), nil

	case "getConfig":
		cfg, err := s.eng.GetConfig(ctx)
		if err != nil {
			return nil, err
		}
		return viewConfig(cfg), nil

	case "subscribe":
		p, err := decode[gameRef](req.Params)
		if err != nil {
			return nil, err
		}
		topic := ""
		if p.Admin != "" || p.Code != "" {
			topic = p.Admin + ":" + p.Code
		}
		ch := s.hub.Subscribe(topic)
		c.subs = append(c.subs, ch)
		go forward(ch, c.send)
		return map[string]string{"topic": topic}, nil

	default:
		return nil, &opError{op: req.Op}
	}
}

// forward drains a hub subscription into the client's outbound queue,
// dropping events if the queue is full.
func forward(ch chan Event, send chan any) {
	for ev := range ch {
		select {
		case send <- ev:
		default:
		}
	}
}

type opError struct{ op string }

func (e *opError) Error() string { return "unknown op " + e.op }
