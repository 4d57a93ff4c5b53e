package userstate

import "sync"

const (
	None int = iota - 1

	//pay
	EnterSellerAddr
	EnterPayAmount

	//withdraw
	EnterWithdrawAddr
	EnterWithdrawAmount
)

var (
	mu           sync.Mutex
	currentState = make(map[int64]int)
	drafts       = make(map[int64]map[string]string)
)

func Current(chatId int64) int {
	mu.Lock()
	defer mu.Unlock()

	state, ok := currentState[chatId]
	if !ok {
		return None
	}
	return state
}

func SetState(chatId int64, state int) {
	mu.Lock()
	defer mu.Unlock()

	currentState[chatId] = state
}

// SetValue stores a value entered in an earlier step of the dialog.
func SetValue(chatId int64, key, value string) {
	mu.Lock()
	defer mu.Unlock()

	d, ok := drafts[chatId]
	if !ok {
		d = make(map[string]string)
		drafts[chatId] = d
	}
	d[key] = value
}

func Value(chatId int64, key string) (string, bool) {
	mu.Lock()
	defer mu.Unlock()

	v, ok := drafts[chatId][key]
	return v, ok
}

func ResetState(chatId int64) {
	mu.Lock()
	defer mu.Unlock()

	delete(currentState, chatId)
	delete(drafts, chatId)
}
