package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/diegoclair/reminder-bot/internal/domain"
	"github.com/diegoclair/reminder-bot/internal/domain/contract"
	"github.com/diegoclair/reminder-bot/internal/domain/entity"
	slackcmd "github.com/diegoclair/reminder-bot/internal/domain/slack"
	"github.com/slack-go/slack"
)

const (
	defaultHistoryHours = 24
	maxHistoryHours     = 24 * 30
	historyTimeout      = 5 * time.Second
)

type SlackHandler struct {
	reminders     contract.ReminderService
	dm            contract.DataManager
	signingSecret string
	loc           *time.Location
	now           func() time.Time
}

// New builds the slash command handler. dm may be nil when the delivery
// journal is disabled.
func New(reminders contract.ReminderService, dm contract.DataManager, signingSecret string, loc *time.Location) *SlackHandler {
	if loc == nil {
		loc = time.Local
	}
	return &SlackHandler{
		reminders:     reminders,
		dm:            dm,
		signingSecret: signingSecret,
		loc:           loc,
		now:           time.Now,
	}
}

func (h *SlackHandler) HandleSlashCommand(w http.ResponseWriter, r *http.Request) {
	// Verify request from Slack
	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	r.Body = io.NopCloser(bytes.NewBuffer(body))

	// Verify Slack signature
	verifier, err := slack.NewSecretsVerifier(r.Header, h.signingSecret)
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if _, err := verifier.Write(body); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if err := verifier.Ensure(); err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	// Parse command
	s, err := slack.SlashCommandParse(r)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	// Parse our command
	cmd, err := slackcmd.ParseCommand(s.Text)
	if err != nil {
		h.respondWithError(w, err.Error())
		return
	}

	// Handle command
	response := h.handleCommand(r.Context(), cmd)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *SlackHandler) handleCommand(ctx context.Context, cmd *slackcmd.Command) *slack.Msg {
	switch cmd.Type {
	case slackcmd.CmdStatus:
		return h.handleStatus(ctx, cmd)
	case slackcmd.CmdNext:
		return h.handleNext()
	case slackcmd.CmdHistory:
		return h.handleHistory(ctx, cmd)
	case slackcmd.CmdHelp:
		return h.handleHelp()
	default:
		return h.createErrorResponse("Unknown command")
	}
}

func (h *SlackHandler) handleStatus(ctx context.Context, cmd *slackcmd.Command) *slack.Msg {
	filter := domain.AllDays
	if len(cmd.Args) > 0 {
		mask, err := domain.ParseWeekdayMask(strings.Join(cmd.Args, ","))
		if err != nil {
			return h.createErrorResponse(fmt.Sprintf("Invalid days %q, use names like `fri`, `mon,tue` or `weekday-eve`", strings.Join(cmd.Args, " ")))
		}
		filter = mask
	}

	var statuses []entity.ReminderStatus
	for _, st := range h.reminders.Status() {
		if st.Days&filter != 0 {
			statuses = append(statuses, st)
		}
	}
	if len(statuses) == 0 {
		return h.createErrorResponse("No reminders are configured")
	}

	ctx, cancel := context.WithTimeout(ctx, historyTimeout)
	defer cancel()

	var b strings.Builder
	b.WriteString("⏰ *Reminders*\n")
	for _, st := range statuses {
		next := "stopped"
		if st.Running && !st.Next.IsZero() {
			next = st.Next.In(h.loc).Format("Mon 01/02 15:04")
		}
		fmt.Fprintf(&b, "• `%s` (%s) next fire %s: %s%s\n", st.Clock, st.Days, next, summary(st.Text), h.lastDelivery(ctx, st.Index))
	}

	return &slack.Msg{
		ResponseType: slack.ResponseTypeEphemeral,
		Text:         b.String(),
	}
}

// lastDelivery describes the latest journal row of a reminder, or nothing
// when the journal is disabled or empty.
func (h *SlackHandler) lastDelivery(ctx context.Context, index int) string {
	if h.dm == nil {
		return ""
	}
	last, err := h.dm.Delivery().LastByReminder(ctx, index)
	if err != nil || last == nil {
		return ""
	}
	return fmt.Sprintf(" (last %s %s)", statusIcon(last.Status), last.ScheduledFor.In(h.loc).Format("01/02 15:04"))
}

func (h *SlackHandler) handleNext() *slack.Msg {
	var upcoming []entity.ReminderStatus
	for _, st := range h.reminders.Status() {
		if st.Running && !st.NextDelivery().IsZero() {
			upcoming = append(upcoming, st)
		}
	}
	if len(upcoming) == 0 {
		return h.createErrorResponse("No reminder is armed")
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].NextDelivery().Before(upcoming[j].NextDelivery())
	})
	next := upcoming[0]

	return &slack.Msg{
		ResponseType: slack.ResponseTypeEphemeral,
		Text: fmt.Sprintf("⏭️ Next reminder on *%s*:\n%s",
			next.NextDelivery().In(h.loc).Format("Mon 01/02 15:04"), next.Text),
	}
}

func (h *SlackHandler) handleHistory(ctx context.Context, cmd *slackcmd.Command) *slack.Msg {
	if h.dm == nil {
		return h.createErrorResponse("The delivery journal is disabled")
	}

	hours := defaultHistoryHours
	if len(cmd.Args) > 0 {
		n, err := strconv.Atoi(cmd.Args[0])
		if err != nil || n <= 0 || n > maxHistoryHours {
			return h.createErrorResponse(fmt.Sprintf("Invalid number of hours, use 1 to %d", maxHistoryHours))
		}
		hours = n
	}

	ctx, cancel := context.WithTimeout(ctx, historyTimeout)
	defer cancel()

	since := h.now().Add(-time.Duration(hours) * time.Hour)
	deliveries, err := h.dm.Delivery().ListSince(ctx, since)
	if err != nil {
		return h.createErrorResponse("Error reading the delivery journal")
	}
	if len(deliveries) == 0 {
		return &slack.Msg{
			ResponseType: slack.ResponseTypeEphemeral,
			Text:         fmt.Sprintf("📭 No deliveries in the last %d hours", hours),
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📜 *Deliveries in the last %d hours*\n", hours)
	for _, d := range deliveries {
		fmt.Fprintf(&b, "• %s #%d %s %s\n",
			d.ScheduledFor.In(h.loc).Format("01/02 15:04"), d.ReminderIndex, statusIcon(d.Status), d.Status)
	}

	return &slack.Msg{
		ResponseType: slack.ResponseTypeEphemeral,
		Text:         b.String(),
	}
}

func (h *SlackHandler) handleHelp() *slack.Msg {
	return &slack.Msg{
		ResponseType: slack.ResponseTypeEphemeral,
		Text:         slackcmd.GetHelpText(),
	}
}

func (h *SlackHandler) createErrorResponse(message string) *slack.Msg {
	return &slack.Msg{
		ResponseType: slack.ResponseTypeEphemeral,
		Text:         fmt.Sprintf("❌ %s", message),
	}
}

func (h *SlackHandler) respondWithError(w http.ResponseWriter, message string) {
	response := h.createErrorResponse(message)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func statusIcon(status string) string {
	switch status {
	case entity.DeliverySent:
		return "✅"
	case entity.DeliveryFailed:
		return "⚠️"
	default:
		return "➖"
	}
}

// summary keeps the first line of a reminder text.
func summary(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	return line
}
