package telegram

import (
	"errors"
	"strconv"
	"strings"
)

const HelpText = `Commands:
/start - show this help
/help - show this help
/search <text> - find item ids by name
/add <item_id> <quality> <threshold> <higher|lower>
/alerts - list your alerts
/delete <alert_id>

Quality: 1 Normal, 2 Good, 3 Outstanding, 4 Excellent, 5 Masterpiece.
You can also type @botname <text> in any chat to look up item ids.
You get one message when the price crosses your threshold, then the alert is removed.
Example:
/add T4_BAG@1 2 15000 lower
`

var ErrInvalidArguments = errors.New("invalid arguments")

type AddAlertArgs struct {
	ItemID    string
	Quality   string
	Threshold string
	Direction string
}

func ParseAddAlertArgs(args string) (AddAlertArgs, error) {
	parts := strings.Fields(args)
	if len(parts) != 4 {
		return AddAlertArgs{}, ErrInvalidArguments
	}
	return AddAlertArgs{
		ItemID:    parts[0],
		Quality:   parts[1],
		Threshold: parts[2],
		Direction: parts[3],
	}, nil
}

func ParseSearchText(args string) (string, error) {
	text := strings.TrimSpace(args)
	if text == "" {
		return "", ErrInvalidArguments
	}
	return text, nil
}

func ParseAlertID(args string) (uint, error) {
	idStr := strings.TrimPrefix(strings.TrimSpace(args), "#")
	if idStr == "" {
		return 0, ErrInvalidArguments
	}
	value, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		return 0, ErrInvalidArguments
	}
	return uint(value), nil
}
