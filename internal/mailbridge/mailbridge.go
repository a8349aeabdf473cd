// Package mailbridge mutates Mail.app message state through osascript. Every
// operation is best-effort: a false return is logged by the caller but never
// escalates, because by the time the bridge runs the extraction output is
// already durable on disk.
package mailbridge

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// FlagLevel is the color flag applied to a message to signal the processing
// outcome to a human reviewer.
type FlagLevel int

const (
	FlagNone   FlagLevel = 0
	FlagRed    FlagLevel = 1 // extraction failed, needs a look
	FlagOrange FlagLevel = 2 // classified as not a real document
)

// Bridge addresses messages by the opaque id the mail rule handed us.
type Bridge struct {
	timeout time.Duration
}

// New creates a bridge. timeout bounds each osascript call; zero means 30s.
func New(timeout time.Duration) *Bridge {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Bridge{timeout: timeout}
}

// MarkReadAndMove marks the message read and moves it into folder.
func (b *Bridge) MarkReadAndMove(ctx context.Context, messageID, folder string) bool {
	if !validID(messageID) {
		return false
	}
	script := fmt.Sprintf(`
	tell application "Mail"
		set targetMessage to missing value
		set targetMailbox to missing value
		repeat with acct in accounts
			repeat with mbx in mailboxes of acct
				try
					set msgs to (messages of mbx whose id is %s)
					if (count of msgs) > 0 then
						set targetMessage to item 1 of msgs
						try
							set targetMailbox to mailbox "%s" of acct
						end try
						exit repeat
					end if
				end try
			end repeat
			if targetMessage is not missing value then exit repeat
		end repeat
		if targetMessage is missing value then
			repeat with acct in accounts
				try
					set msgs to (messages of inbox of acct whose id is %s)
					if (count of msgs) > 0 then
						set targetMessage to item 1 of msgs
						try
							set targetMailbox to mailbox "%s" of acct
						end try
						exit repeat
					end if
				end try
			end repeat
		end if
		if targetMessage is missing value then error "message not found"
		if targetMailbox is missing value then error "target mailbox not found"
		set read status of targetMessage to true
		move targetMessage to targetMailbox
		return "OK"
	end tell`,
		messageID, escape(folder), messageID, escape(folder))

	return b.run(ctx, script)
}

// MarkRead marks the message read without moving it.
func (b *Bridge) MarkRead(ctx context.Context, messageID string) bool {
	if !validID(messageID) {
		return false
	}
	script := fmt.Sprintf(`
	tell application "Mail"
		repeat with acct in accounts
			repeat with mbx in mailboxes of acct
				try
					set msgs to (messages of mbx whose id is %s)
					if (count of msgs) > 0 then
						set read status of item 1 of msgs to true
						return "OK"
					end if
				end try
			end repeat
			try
				set msgs to (messages of inbox of acct whose id is %s)
				if (count of msgs) > 0 then
					set read status of item 1 of msgs to true
					return "OK"
				end if
			end try
		end repeat
		error "message not found"
	end tell`,
		messageID, messageID)

	return b.run(ctx, script)
}

// Flag puts a color flag on the message.
func (b *Bridge) Flag(ctx context.Context, messageID string, level FlagLevel) bool {
	if !validID(messageID) {
		return false
	}
	script := fmt.Sprintf(`
	tell application "Mail"
		repeat with acct in accounts
			repeat with mbx in mailboxes of acct
				try
					set msgs to (messages of mbx whose id is %s)
					if (count of msgs) > 0 then
						set flag index of item 1 of msgs to %d
						return "OK"
					end if
				end try
			end repeat
			try
				set msgs to (messages of inbox of acct whose id is %s)
				if (count of msgs) > 0 then
					set flag index of item 1 of msgs to %d
					return "OK"
				end if
			end try
		end repeat
		error "message not found"
	end tell`,
		messageID, level, messageID, level)

	return b.run(ctx, script)
}

func (b *Bridge) run(ctx context.Context, script string) bool {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "osascript", "-e", script)
	return cmd.Run() == nil
}

// validID accepts only the numeric ids Mail.app hands to rules. The id is
// interpolated into the script unquoted, so anything else is rejected.
func validID(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
