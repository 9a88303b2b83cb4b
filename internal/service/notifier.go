package service

import "github.com/google/uuid"

// BoardNotifier receives a hint after every committed mutation on a board so
// live watchers can refetch the snapshot. The websocket hub implements it; a
// nil notifier disables the hints.
type BoardNotifier interface {
	NotifyBoardChanged(boardID, actorID uuid.UUID)
}

// notifyBoard emits a change hint if a notifier is wired
func notifyBoard(n BoardNotifier, boardID, actorID uuid.UUID) {
	if n != nil {
		n.NotifyBoardChanged(boardID, actorID)
	}
}
