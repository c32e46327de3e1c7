package engine

import "errors"

// 匹配协议相关错误
var (
	ErrGameAlreadyActive = errors.New("game already active in this room")
	ErrNotJoinable       = errors.New("game not joinable")
	ErrAlreadyJoined     = errors.New("already joined")
	ErrGameFull          = errors.New("game is full")
	ErrNoGame            = errors.New("no game in this room")
)

// 对局进行相关错误
var (
	ErrGameNotStarted = errors.New("game has not started")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrNotAPlayer     = errors.New("sender is not a player of this game")
	ErrNoLegalMove    = errors.New("no legal move available")
)

// 解析相关错误
var (
	ErrUnparsableMove = errors.New("unable to parse move")
)

// BadMoveError 语义上不合法的落子
// Reason 是模型给出的用户可读原因，会原样回复给玩家
type BadMoveError struct {
	Reason string
}

func (e *BadMoveError) Error() string {
	return e.Reason
}

// NewBadMove 构造 BadMoveError
func NewBadMove(reason string) *BadMoveError {
	return &BadMoveError{Reason: reason}
}

// AsBadMove 判断错误是否为落子不合法
func AsBadMove(err error) (*BadMoveError, bool) {
	var badMove *BadMoveError
	if errors.As(err, &badMove) {
		return badMove, true
	}
	return nil, false
}
