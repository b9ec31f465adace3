package domain

import "fmt"

// Command команда жизненного цикла бронирования
type Command string

const (
	CommandConfirm     Command = "confirm"
	CommandCheckIn     Command = "check_in"
	CommandComplete    Command = "complete"
	CommandCancel      Command = "cancel"
	CommandReportIssue Command = "report_issue"
	CommandExtend      Command = "extend"
)

// transitions таблица переходов: статус -> команда -> новый статус
// completed и cancelled терминальные, поэтому в таблице отсутствуют
var transitions = map[BookingStatus]map[Command]BookingStatus{
	StatusPending: {
		CommandConfirm: StatusConfirmed,
		CommandCancel:  StatusCancelled,
	},
	StatusConfirmed: {
		CommandCheckIn:     StatusActive,
		CommandComplete:    StatusCompleted,
		CommandCancel:      StatusCancelled,
		CommandReportIssue: StatusIssueReported,
		CommandExtend:      StatusConfirmed,
	},
	StatusActive: {
		CommandComplete:    StatusCompleted,
		CommandCancel:      StatusCancelled,
		CommandReportIssue: StatusIssueReported,
		CommandExtend:      StatusActive,
	},
	StatusIssueReported: {
		CommandCheckIn:  StatusActive,
		CommandComplete: StatusCompleted,
		CommandCancel:   StatusCancelled,
	},
}

// Transition возвращает статус после применения команды
// Недопустимая пара возвращает ErrInvalidTransition
func Transition(from BookingStatus, cmd Command) (BookingStatus, error) {
	if to, ok := transitions[from][cmd]; ok {
		return to, nil
	}
	return "", fmt.Errorf("%w: %s from %s", ErrInvalidTransition, cmd, from)
}

// CanApply разрешена ли команда в текущем статусе
func CanApply(from BookingStatus, cmd Command) bool {
	_, ok := transitions[from][cmd]
	return ok
}

// CommandForTarget команда, переводящая бронирование в целевой статус при явной смене статуса
// issue_reported выставляется только через сообщение о проблеме, pending недостижим
func CommandForTarget(target BookingStatus) (Command, error) {
	switch target {
	case StatusConfirmed:
		return CommandConfirm, nil
	case StatusActive:
		return CommandCheckIn, nil
	case StatusCompleted:
		return CommandComplete, nil
	case StatusCancelled:
		return CommandCancel, nil
	case StatusIssueReported:
		return "", fmt.Errorf("%w: use report-issue to set %s", ErrInvalidInput, target)
	case StatusPending:
		return "", fmt.Errorf("%w: %s is not a reachable status", ErrInvalidTransition, target)
	default:
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, target)
	}
}
