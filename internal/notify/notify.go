package notify

import (
	"fmt"
	"log"
	"os/exec"
)

type Notifier interface {
	Ready(hotkey string)
	RecordingChanged(on bool)
	Transcribing()
	Error(msg string)
}

// Desktop sends notifications via notify-send.
type Desktop struct{}

func (Desktop) Ready(hotkey string) {
	send("normal", fmt.Sprintf("Voxkey ready. Press %s to dictate", hotkey))
}

func (Desktop) RecordingChanged(on bool) {
	state := "Stopped"
	if on {
		state = "Started"
	}
	send("normal", fmt.Sprintf("Voxkey: %s Recording", state))
}

func (Desktop) Transcribing() {
	send("normal", "Voxkey: Transcribing...")
}

func (Desktop) Error(msg string) {
	send("critical", msg)
}

func send(urgency, msg string) {
	cmd := exec.Command("notify-send", "-a", "Voxkey", "-u", urgency, msg)
	if err := cmd.Run(); err != nil {
		log.Printf("Failed to send notification: %v", err)
	}
}

// Log writes notifications to the process log instead of the desktop.
type Log struct{}

func (Log) Ready(hotkey string)      { log.Printf("Notify: ready, hotkey %s", hotkey) }
func (Log) RecordingChanged(on bool) { log.Printf("Notify: recording=%t", on) }
func (Log) Transcribing()            { log.Printf("Notify: transcribing") }
func (Log) Error(msg string)         { log.Printf("Notify: error: %s", msg) }

// Nop is a Notifier that does absolutely nothing.
// Useful in unit tests or headless builds.
type Nop struct{}

func (Nop) Ready(hotkey string)      {}
func (Nop) RecordingChanged(on bool) {}
func (Nop) Transcribing()            {}
func (Nop) Error(msg string)         {}
