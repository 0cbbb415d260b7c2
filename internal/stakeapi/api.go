// Package stakeapi exposes the staking module over HTTP: read-only ledger
// queries plus a single action-submission endpoint.
package stakeapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/gstake-network/gstake/common"
	"github.com/gstake-network/gstake/core/state"
	"github.com/gstake-network/gstake/staking"
	"github.com/gstake-network/gstake/sysaction"
	"github.com/gstake-network/gstake/token"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
)

// Server serves ledger queries and action submission against one StateDB.
// All mutations funnel through a single lock, matching the serialized
// execution model of the module.
type Server struct {
	mu sync.Mutex
	db *state.StateDB
}

// NewServer creates an API server over the given state.
func NewServer(db *state.StateDB) *Server {
	return &Server{db: db}
}

// Handler builds the HTTP handler with all routes registered and CORS
// applied.
func (s *Server) Handler() http.Handler {
	router := httprouter.New()
	router.GET("/v1/controller", s.getController)
	router.GET("/v1/totals", s.getTotals)
	router.GET("/v1/stakeholders", s.getStakeholders)
	router.GET("/v1/stakeholders/:addr", s.getStakeholder)
	router.GET("/v1/balances/:addr", s.getBalance)
	router.POST("/v1/actions", s.postAction)
	return cors.Default().Handler(router)
}

// stakeholderResult is the per-address query response.
type stakeholderResult struct {
	Address     common.Address `json:"address"`
	Stakeholder bool           `json:"stakeholder"`
	Index       *uint64        `json:"index,omitempty"`
	Stake       string         `json:"stake"`
	Reward      string         `json:"reward"`
}

// actionRequest is the body of POST /v1/actions. From supplies the caller
// identity; there is no signature layer, the surrounding deployment is
// expected to authenticate callers.
type actionRequest struct {
	From   common.Address     `json:"from"`
	Action sysaction.SysAction `json:"sysaction"`
}

func (s *Server) getController(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	s.mu.Lock()
	controller := staking.Controller(s.db)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]common.Address{"controller": controller})
}

func (s *Server) getTotals(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	s.mu.Lock()
	resp := map[string]string{
		"totalStakes":  staking.TotalStakes(s.db).String(),
		"totalRewards": staking.TotalRewards(s.db).String(),
		"totalSupply":  token.New(s.db).TotalSupply().String(),
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getStakeholders(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	s.mu.Lock()
	list := staking.Stakeholders(s.db)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string][]common.Address{"stakeholders": list})
}

func (s *Server) getStakeholder(w http.ResponseWriter, _ *http.Request, ps httprouter.Params) {
	addr, ok := parseAddr(w, ps)
	if !ok {
		return
	}
	s.mu.Lock()
	member, idx := staking.IsStakeholder(s.db, addr)
	result := stakeholderResult{
		Address:     addr,
		Stakeholder: member,
		Stake:       staking.StakeOf(s.db, addr).String(),
		Reward:      staking.RewardOf(s.db, addr).String(),
	}
	s.mu.Unlock()
	if member {
		result.Index = &idx
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) getBalance(w http.ResponseWriter, _ *http.Request, ps httprouter.Params) {
	addr, ok := parseAddr(w, ps)
	if !ok {
		return
	}
	s.mu.Lock()
	balance := token.New(s.db).BalanceOf(addr).String()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{
		"address": addr.Hex(),
		"balance": balance,
	})
}

func (s *Server) postAction(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.From.IsZero() {
		writeError(w, http.StatusBadRequest, errors.New("missing from address"))
		return
	}
	data, err := sysaction.Encode(&req.Action)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	gas, err := sysaction.Execute(req.From, data, s.db)
	if err == nil {
		err = s.db.Commit()
	}
	s.mu.Unlock()

	if err != nil {
		log.WithFields(log.Fields{
			"from":   req.From,
			"action": req.Action.Action,
		}).WithError(err).Debug("stakeapi: action rejected")
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]uint64{"gasUsed": gas})
}

// statusFor maps the module's failure classes onto HTTP statuses. All are
// caller faults; only the authorization gate gets its own status.
func statusFor(err error) int {
	if errors.Is(err, staking.ErrUnauthorized) {
		return http.StatusForbidden
	}
	return http.StatusBadRequest
}

func parseAddr(w http.ResponseWriter, ps httprouter.Params) (common.Address, bool) {
	hex := ps.ByName("addr")
	if !common.IsHexAddress(hex) {
		writeError(w, http.StatusBadRequest, errors.New("invalid address"))
		return common.Address{}, false
	}
	return common.HexToAddress(hex), true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("stakeapi: response encoding failed")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
