package testserver

import (
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	VendorID = 42

	accessTTL  = 5 * time.Minute
	refreshTTL = 24 * time.Hour
)

var signingKey = []byte("testserver-secret")

type tokenStore struct {
	mu      sync.Mutex
	access  map[string]bool
	refresh map[string]bool
	otp     map[string]bool
	tickets map[string]bool

	rejectAccess bool
	failRefresh  bool
	refreshDelay time.Duration
	ticketFails  int

	refreshCalls  atomic.Int32
	ticketsIssued atomic.Int32
}

func newTokenStore() *tokenStore {
	return &tokenStore{
		access:  make(map[string]bool),
		refresh: make(map[string]bool),
		otp:     make(map[string]bool),
		tickets: make(map[string]bool),
	}
}

func sign(kind string, ttl time.Duration) string {
	claims := jwt.MapClaims{
		"token_type": kind,
		"user_id":    VendorID,
		"jti":        uuid.NewString(),
		"exp":        time.Now().Add(ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
	if err != nil {
		panic(err)
	}
	return token
}

// IssueTokens returns a fresh, valid token pair, as a successful login would.
func (s *Server) IssueTokens() (access, refresh string) {
	access, refresh = sign("access", accessTTL), sign("refresh", refreshTTL)

	s.tokens.mu.Lock()
	s.tokens.access[access] = true
	s.tokens.refresh[refresh] = true
	s.tokens.mu.Unlock()
	return access, refresh
}

// ExpireAccessTokens invalidates every access token issued so far.
func (s *Server) ExpireAccessTokens() {
	s.tokens.mu.Lock()
	s.tokens.access = make(map[string]bool)
	s.tokens.mu.Unlock()
}

// RejectAllAccess makes every authenticated endpoint answer 401, even right after a refresh.
func (s *Server) RejectAllAccess(reject bool) {
	s.tokens.mu.Lock()
	s.tokens.rejectAccess = reject
	s.tokens.mu.Unlock()
}

// FailRefresh makes the refresh endpoint answer 401.
func (s *Server) FailRefresh(fail bool) {
	s.tokens.mu.Lock()
	s.tokens.failRefresh = fail
	s.tokens.mu.Unlock()
}

// SetRefreshDelay holds every refresh response for d, to widen races in tests.
func (s *Server) SetRefreshDelay(d time.Duration) {
	s.tokens.mu.Lock()
	s.tokens.refreshDelay = d
	s.tokens.mu.Unlock()
}

// FailTickets makes the next n ws-token requests fail with 500.
func (s *Server) FailTickets(n int) {
	s.tokens.mu.Lock()
	s.tokens.ticketFails = n
	s.tokens.mu.Unlock()
}

func (s *Server) RefreshCalls() int  { return int(s.tokens.refreshCalls.Load()) }
func (s *Server) TicketsIssued() int { return int(s.tokens.ticketsIssued.Load()) }

func (s *Server) requireAuth(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")

	s.tokens.mu.Lock()
	ok := token != "" && s.tokens.access[token] && !s.tokens.rejectAccess
	s.tokens.mu.Unlock()

	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Given token not valid for any token type", "code": "token_not_valid"})
		return
	}
	c.Next()
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"email": []string{"This field is required."}})
		return
	}

	switch req.Password {
	case PasswordBad:
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "No active account found with the given credentials"})
	case PasswordOTP:
		identifier := uuid.NewString()
		s.tokens.mu.Lock()
		s.tokens.otp[identifier] = true
		s.tokens.mu.Unlock()
		c.JSON(http.StatusOK, gin.H{"otp_required": true, "identifier": identifier, "detail": "A code was sent to your email."})
	default:
		access, refresh := s.IssueTokens()
		c.JSON(http.StatusOK, gin.H{"access": access, "refresh": refresh})
	}
}

type otpRequest struct {
	Identifier string `json:"identifier"`
	OTP        string `json:"otp"`
}

func (s *Server) verifyOTP(c *gin.Context) {
	var req otpRequest
	_ = c.ShouldBindJSON(&req)

	s.tokens.mu.Lock()
	known := s.tokens.otp[req.Identifier]
	if known && req.OTP == ValidOTP {
		delete(s.tokens.otp, req.Identifier)
	}
	s.tokens.mu.Unlock()

	if !known || req.OTP != ValidOTP {
		c.JSON(http.StatusBadRequest, gin.H{"otp": []string{"Invalid or expired code."}})
		return
	}
	access, refresh := s.IssueTokens()
	c.JSON(http.StatusOK, gin.H{"access": access, "refresh": refresh})
}

func (s *Server) resendOTP(c *gin.Context) {
	var req otpRequest
	_ = c.ShouldBindJSON(&req)

	s.tokens.mu.Lock()
	known := s.tokens.otp[req.Identifier]
	s.tokens.mu.Unlock()

	if !known {
		c.JSON(http.StatusBadRequest, gin.H{"identifier": []string{"Unknown identifier."}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "A new code was sent."})
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

func (s *Server) refresh(c *gin.Context) {
	s.tokens.refreshCalls.Add(1)

	var req refreshRequest
	_ = c.ShouldBindJSON(&req)

	s.tokens.mu.Lock()
	delay, fail := s.tokens.refreshDelay, s.tokens.failRefresh
	valid := s.tokens.refresh[req.Refresh]
	s.tokens.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if fail || !valid {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Token is invalid or expired", "code": "token_not_valid"})
		return
	}

	access := sign("access", accessTTL)
	s.tokens.mu.Lock()
	s.tokens.access[access] = true
	s.tokens.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"access": access})
}

func (s *Server) verify(c *gin.Context) {
	var req struct {
		Token string `json:"token"`
	}
	_ = c.ShouldBindJSON(&req)

	s.tokens.mu.Lock()
	valid := s.tokens.access[req.Token]
	s.tokens.mu.Unlock()

	if !valid {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Token is invalid or expired"})
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func (s *Server) logout(c *gin.Context) {
	var req refreshRequest
	_ = c.ShouldBindJSON(&req)

	s.tokens.mu.Lock()
	delete(s.tokens.refresh, req.Refresh)
	s.tokens.mu.Unlock()
	c.Status(http.StatusNoContent)
}

func (s *Server) wsToken(c *gin.Context) {
	s.tokens.mu.Lock()
	if s.tokens.ticketFails > 0 {
		s.tokens.ticketFails--
		s.tokens.mu.Unlock()
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Ticket service unavailable"})
		return
	}
	ticket := uuid.NewString()
	s.tokens.tickets[ticket] = true
	s.tokens.mu.Unlock()

	s.tokens.ticketsIssued.Add(1)
	c.JSON(http.StatusOK, gin.H{"token": ticket})
}

// consumeTicket accepts each ticket exactly once.
func (s *Server) consumeTicket(ticket string) bool {
	s.tokens.mu.Lock()
	defer s.tokens.mu.Unlock()
	if !s.tokens.tickets[ticket] {
		return false
	}
	delete(s.tokens.tickets, ticket)
	return true
}
