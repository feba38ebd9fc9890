// Package notification delivers service order events to the shop's chat
// channels and to the client's e-mail. Delivery is best effort: failures are
// logged and counted, never returned to the request that caused them.
package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"garage/internal/domain/client"
	"garage/internal/domain/servicecenter"
	"garage/internal/domain/serviceorder"
	"garage/internal/domain/status"
	"garage/internal/domain/vehicle"
	"garage/internal/infrastructure/email"
	"garage/internal/infrastructure/slack"
	"garage/internal/shared/biztime"
	"garage/internal/shared/goroutine"
	"garage/internal/shared/logger"
	"garage/internal/shared/money"
	"garage/internal/shared/services/markdown"
)

const (
	ChannelTelegram = "telegram"
	ChannelSlack    = "slack"
	ChannelEmail    = "email"

	defaultTimeout = 15 * time.Second
)

type TelegramSender interface {
	SendMessage(ctx context.Context, text string) error
}

type SlackSender interface {
	Send(ctx context.Context, notice slack.Notice) error
}

type EmailSender interface {
	Send(ctx context.Context, msg email.Message) error
}

type MetricsRecorder interface {
	RecordNotification(channel string, err error)
}

// Channels holds the enabled senders. A nil sender is skipped.
type Channels struct {
	Telegram TelegramSender
	Slack    SlackSender
	Email    EmailSender
}

type Dispatcher struct {
	channels  Channels
	clients   client.Repository
	vehicles  vehicle.Repository
	centers   servicecenter.Repository
	statuses  status.Registry
	renderer  markdown.Renderer
	formatter *money.Formatter
	metrics   MetricsRecorder
	tracker   *goroutine.Tracker
	timeout   time.Duration
	logger    logger.Interface
}

func NewDispatcher(
	channels Channels,
	clients client.Repository,
	vehicles vehicle.Repository,
	centers servicecenter.Repository,
	statuses status.Registry,
	renderer markdown.Renderer,
	formatter *money.Formatter,
	metrics MetricsRecorder,
	logger logger.Interface,
) *Dispatcher {
	return &Dispatcher{
		channels:  channels,
		clients:   clients,
		vehicles:  vehicles,
		centers:   centers,
		statuses:  statuses,
		renderer:  renderer,
		formatter: formatter,
		metrics:   metrics,
		tracker:   goroutine.NewTracker(logger),
		timeout:   defaultTimeout,
		logger:    logger,
	}
}

// NotifyStatusChanged delivers ev in the background.
func (d *Dispatcher) NotifyStatusChanged(ev serviceorder.StatusChangedEvent) {
	if !d.enabled() {
		return
	}
	d.tracker.Go("notify-status-changed", func() {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		d.deliverStatusChange(ctx, ev)
	})
}

// Wait blocks until pending deliveries finish or ctx is done.
func (d *Dispatcher) Wait(ctx context.Context) error {
	return d.tracker.Wait(ctx)
}

func (d *Dispatcher) enabled() bool {
	return d.channels.Telegram != nil || d.channels.Slack != nil || d.channels.Email != nil
}

func (d *Dispatcher) deliverStatusChange(ctx context.Context, ev serviceorder.StatusChangedEvent) {
	view, cl := d.statusView(ctx, ev)

	if d.channels.Telegram != nil {
		text, err := render(statusTelegramTmpl, view)
		if err == nil {
			err = d.channels.Telegram.SendMessage(ctx, text)
		}
		d.record(ChannelTelegram, ev, err)
	}

	if d.channels.Slack != nil {
		d.record(ChannelSlack, ev, d.channels.Slack.Send(ctx, statusNotice(view, ev.To)))
	}

	if d.channels.Email != nil && ev.To == status.Completed {
		if cl == nil || cl.Email() == nil || strings.TrimSpace(*cl.Email()) == "" {
			d.logger.Debugw("client has no e-mail, skipping completion notice",
				"service_id", ev.ServiceID,
			)
			return
		}
		d.record(ChannelEmail, ev, d.sendCompletedEmail(ctx, cl, view))
	}
}

func (d *Dispatcher) sendCompletedEmail(ctx context.Context, cl *client.Client, view statusView) error {
	body, err := render(completedEmailTmpl, view)
	if err != nil {
		return err
	}
	html, err := d.renderer.ToHTMLSanitized(body)
	if err != nil {
		return err
	}
	return d.channels.Email.Send(ctx, email.Message{
		To:        *cl.Email(),
		ToName:    cl.Name(),
		Subject:   fmt.Sprintf("Service order %s completed", view.Number),
		PlainBody: d.renderer.PlainText(html),
		HTMLBody:  html,
	})
}

func (d *Dispatcher) record(channel string, ev serviceorder.StatusChangedEvent, err error) {
	if d.metrics != nil {
		d.metrics.RecordNotification(channel, err)
	}
	if err != nil {
		d.logger.Warnw("failed to deliver notification",
			"channel", channel,
			"service_id", ev.ServiceID,
			"status", ev.To,
			"error", err,
		)
		return
	}
	d.logger.Debugw("notification delivered",
		"channel", channel,
		"service_id", ev.ServiceID,
		"status", ev.To,
	)
}

// statusView loads the related records. Lookup failures degrade to
// placeholders so the message still goes out.
func (d *Dispatcher) statusView(ctx context.Context, ev serviceorder.StatusChangedEvent) (statusView, *client.Client) {
	view := statusView{
		Headline: headline(ev.To),
		Number:   ev.ServiceNumber,
		Client:   fmt.Sprintf("#%d", ev.ClientID),
		Vehicle:  fmt.Sprintf("#%d", ev.VehicleID),
		Center:   fmt.Sprintf("#%d", ev.ServiceCenterID),
		To:       d.statusLabel(ctx, ev.To),
		Total:    d.formatter.Format(ev.TotalAmount),
		When:     biztime.Format(ev.OccurredAt, "02/01/2006 15:04"),
	}
	if ev.From != nil {
		view.From = d.statusLabel(ctx, *ev.From)
	}
	if ev.Reason != nil {
		view.Reason = *ev.Reason
	}

	cl, err := d.clients.GetByID(ctx, ev.ClientID)
	if err != nil {
		d.logger.Warnw("failed to load client for notification", "client_id", ev.ClientID, "error", err)
		cl = nil
	} else {
		view.Client = cl.Name()
	}
	if v, err := d.vehicles.GetByID(ctx, ev.VehicleID); err == nil {
		view.Vehicle = describeVehicle(v)
	} else {
		d.logger.Warnw("failed to load vehicle for notification", "vehicle_id", ev.VehicleID, "error", err)
	}
	if c, err := d.centers.GetByID(ctx, ev.ServiceCenterID); err == nil {
		view.Center = c.Name()
	} else {
		d.logger.Warnw("failed to load service center for notification", "service_center_id", ev.ServiceCenterID, "error", err)
	}
	return view, cl
}

func (d *Dispatcher) statusLabel(ctx context.Context, name status.Name) string {
	s, err := d.statuses.FindByName(ctx, name)
	if err != nil {
		return name.String()
	}
	return s.Label()
}

// SendAgenda posts the digest of orders scheduled for day to the chat
// channels. It fails only when every enabled channel failed.
func (d *Dispatcher) SendAgenda(ctx context.Context, day time.Time, orders []*serviceorder.ServiceOrder) error {
	if d.channels.Telegram == nil && d.channels.Slack == nil {
		return nil
	}

	view, err := d.agendaView(ctx, day, orders)
	if err != nil {
		return err
	}

	var errs []error
	sent := 0
	if d.channels.Telegram != nil {
		text, err := render(agendaTelegramTmpl, view)
		if err == nil {
			err = d.channels.Telegram.SendMessage(ctx, text)
		}
		d.recordAgenda(ChannelTelegram, err)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", ChannelTelegram, err))
		} else {
			sent++
		}
	}
	if d.channels.Slack != nil {
		err := d.channels.Slack.Send(ctx, agendaNotice(view))
		d.recordAgenda(ChannelSlack, err)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", ChannelSlack, err))
		} else {
			sent++
		}
	}

	if sent == 0 {
		return errors.Join(errs...)
	}
	return nil
}

func (d *Dispatcher) recordAgenda(channel string, err error) {
	if d.metrics != nil {
		d.metrics.RecordNotification(channel, err)
	}
	if err != nil {
		d.logger.Warnw("failed to deliver agenda", "channel", channel, "error", err)
	}
}

func (d *Dispatcher) agendaView(ctx context.Context, day time.Time, orders []*serviceorder.ServiceOrder) (agendaView, error) {
	clientIDs := make([]uint, 0, len(orders))
	vehicleIDs := make([]uint, 0, len(orders))
	for _, o := range orders {
		clientIDs = append(clientIDs, o.ClientID())
		vehicleIDs = append(vehicleIDs, o.VehicleID())
	}

	clients, err := d.clients.GetByIDs(ctx, clientIDs)
	if err != nil {
		return agendaView{}, fmt.Errorf("failed to load clients: %w", err)
	}
	vehicles, err := d.vehicles.GetByIDs(ctx, vehicleIDs)
	if err != nil {
		return agendaView{}, fmt.Errorf("failed to load vehicles: %w", err)
	}
	centers, err := d.centers.List(ctx, false)
	if err != nil {
		return agendaView{}, fmt.Errorf("failed to load service centers: %w", err)
	}
	centerNames := make(map[uint]string, len(centers))
	for _, c := range centers {
		centerNames[c.ID()] = c.Name()
	}

	view := agendaView{
		Day:   biztime.Format(day, "02/01/2006"),
		Lines: make([]agendaLine, 0, len(orders)),
	}
	for _, o := range orders {
		line := agendaLine{
			Time:    "--:--",
			Number:  o.ServiceNumber(),
			Client:  fmt.Sprintf("#%d", o.ClientID()),
			Vehicle: fmt.Sprintf("#%d", o.VehicleID()),
			Center:  centerNames[o.ServiceCenterID()],
		}
		if o.ScheduledDate() != nil {
			line.Time = biztime.Format(*o.ScheduledDate(), "15:04")
		}
		if c, ok := clients[o.ClientID()]; ok {
			line.Client = c.Name()
		}
		if v, ok := vehicles[o.VehicleID()]; ok {
			line.Vehicle = describeVehicle(v)
		}
		view.Lines = append(view.Lines, line)
	}
	return view, nil
}

func statusNotice(view statusView, to status.Name) slack.Notice {
	fields := []slack.Field{
		{Name: "Client", Value: view.Client},
		{Name: "Vehicle", Value: view.Vehicle},
		{Name: "Center", Value: view.Center},
		{Name: "Total", Value: view.Total},
	}
	if view.Reason != "" {
		fields = append(fields, slack.Field{Name: "Reason", Value: view.Reason})
	}
	transition := view.To
	if view.From != "" {
		transition = view.From + " → " + view.To
	}
	return slack.Notice{
		Title:  fmt.Sprintf("%s: %s", view.Headline, view.Number),
		Text:   transition,
		Color:  statusColor(to),
		Fields: fields,
	}
}

func agendaNotice(view agendaView) slack.Notice {
	var b strings.Builder
	for _, l := range view.Lines {
		fmt.Fprintf(&b, "%s `%s` %s, %s (%s)\n", l.Time, l.Number, l.Client, l.Vehicle, l.Center)
	}
	if len(view.Lines) == 0 {
		b.WriteString("Nothing scheduled.")
	}
	return slack.Notice{
		Title: fmt.Sprintf("Agenda for %s (%d orders)", view.Day, len(view.Lines)),
		Text:  strings.TrimRight(b.String(), "\n"),
	}
}

func headline(to status.Name) string {
	switch to {
	case status.Scheduled:
		return "Service order scheduled"
	case status.InProgress:
		return "Service order started"
	case status.Completed:
		return "Service order completed"
	case status.Cancelled:
		return "Service order cancelled"
	default:
		return "Service order " + to.String()
	}
}

func statusColor(to status.Name) string {
	switch to {
	case status.Completed:
		return "good"
	case status.Cancelled:
		return "danger"
	case status.InProgress:
		return "warning"
	default:
		return "#439FE0"
	}
}

func describeVehicle(v *vehicle.Vehicle) string {
	return fmt.Sprintf("%s %s (%s)", v.Brand(), v.Model(), v.Plate())
}
