package constants

// Centralized constants for headers, env keys and route paths.
const (
	// Environment variable keys
	EnvConfigPath = "ARENA_CONFIG"
	EnvDBPath     = "ARENA_DB"
	EnvListenAddr = "ARENA_ADDR"

	// HTTP headers and content types
	HeaderContentType   = "Content-Type"
	HeaderWalletAddress = "X-Wallet-Address"

	ContentTypeJSON = "application/json"

	CacheControlHeader  = "Cache-Control"
	CacheControlNoCache = "no-cache, no-store, must-revalidate"
)

// Routes used by the backend router
const (
	RouteAPIPrefix    = "/api"
	RouteVersion      = "/version"
	RouteCharacters   = "/characters"
	RouteLeaderboard  = "/leaderboard"
	RoutePlayerByAddr = "/players/:address"
	RouteMatches      = "/matches"
	RouteMatchesJoin  = "/matches/join"
	RouteMatchByCode  = "/matches/:matchCode"
	RouteMatchMove    = "/matches/:matchCode/move"
	RouteMatchResign  = "/matches/:matchCode/resign"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyStatus  = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest         = "Invalid request"
	ErrInvalidAddress         = "Invalid wallet address"
	ErrInvalidMove            = "Invalid move"
	ErrMatchNotFound          = "Match not found"
	ErrPlayerNotFound         = "Player not found"
	ErrFailedFetchLeaderboard = "Failed to fetch leaderboard"
	ErrFailedFetchCharacters  = "Failed to fetch characters"

	ErrFailedCreateMatch    = "Failed to create match"
	ErrFailedUpdateMatch    = "Failed to update match"
	ErrMatchFull            = "Match is full"
	ErrMatchNotInProgress   = "Match is not in progress"
	ErrMovesLockedResolving = "Moves are locked; resolving current turn"
	ErrMoveAlreadySubmitted = "Move already submitted this turn"
	ErrNotAParticipant      = "Player not in this match"
	ErrUnknownCharacter     = "Unknown character"
	ErrCannotJoinOwnMatch   = "Cannot join your own match"
)

// Logging field names
const (
	LogFieldMatchCode = "match_code"
	LogFieldAddress   = "address"
	LogFieldMove      = "move"
	LogFieldWinner    = "winner"
	LogFieldRound     = "round"
	LogFieldTurn      = "turn"
	LogFieldStatus    = "status"
	LogFieldAddr      = "addr"
)
