package cli

import (
	"fmt"
	"io"
	"mindmate/internal/models"
	"mindmate/internal/normalizer"
	"mindmate/internal/services"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (use text, json or yaml)", s)
	}
}

// AffirmationResult, TriggersResult and HealthResult give scalar answers a
// named field in structured output.
type AffirmationResult struct {
	Affirmation *string `json:"affirmation" yaml:"affirmation"`
}

type TriggersResult struct {
	Triggers []string `json:"triggers" yaml:"triggers"`
}

type HealthResult struct {
	Status models.HealthStatus `json:"status" yaml:"status"`
}

type Formatter struct {
	w      io.Writer
	format Format

	title lipgloss.Style
	label lipgloss.Style
	muted lipgloss.Style
	good  lipgloss.Style
	bad   lipgloss.Style
}

// NewFormatter styles text for w; a writer that is not a terminal gets
// plain text.
func NewFormatter(w io.Writer, format Format) *Formatter {
	r := lipgloss.NewRenderer(w)
	return &Formatter{
		w:      w,
		format: format,
		title:  r.NewStyle().Foreground(lipgloss.Color("62")).Bold(true),
		label:  r.NewStyle().Bold(true),
		muted:  r.NewStyle().Foreground(lipgloss.Color("240")),
		good:   r.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		bad:    r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
}

func (f *Formatter) Print(v any) error {
	switch f.format {
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(f.w, string(data))
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(f.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		_, err := io.WriteString(f.w, f.text(v))
		return err
	}
}

func (f *Formatter) text(v any) string {
	var b strings.Builder
	switch t := v.(type) {
	case services.WorkflowSnapshot:
		f.snapshot(&b, t)
	case *models.DailyInsights:
		f.daily(&b, t)
	case *models.WeeklyInsights:
		f.weekly(&b, t)
	case models.EmotionInference:
		f.inference(&b, t)
	case []models.MoodOption:
		for _, m := range t {
			fmt.Fprintf(&b, "%s %s\n", m.Emoji, m.Name)
		}
	case AffirmationResult:
		if t.Affirmation == nil {
			b.WriteString(f.muted.Render("No affirmation available right now.") + "\n")
		} else {
			b.WriteString(*t.Affirmation + "\n")
		}
	case TriggersResult:
		f.section(&b, "Repeating triggers")
		f.list(&b, t.Triggers, "No repeating triggers found yet.")
	case HealthResult:
		style := f.good
		if t.Status != models.HealthOK {
			style = f.bad
		}
		fmt.Fprintf(&b, "%s %s\n", f.label.Render("Backend:"), style.Render(string(t.Status)))
	default:
		fmt.Fprintf(&b, "%v\n", v)
	}
	return b.String()
}

func (f *Formatter) section(b *strings.Builder, title string) {
	b.WriteString(f.title.Render(title) + "\n")
}

func (f *Formatter) field(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "%s %s\n", f.label.Render(label+":"), value)
}

func (f *Formatter) list(b *strings.Builder, items []string, empty string) {
	if len(items) == 0 {
		if empty != "" {
			b.WriteString("  " + f.muted.Render(empty) + "\n")
		}
		return
	}
	for _, item := range items {
		fmt.Fprintf(b, "  • %s\n", item)
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (f *Formatter) snapshot(b *strings.Builder, s services.WorkflowSnapshot) {
	mood := "none selected"
	if s.Mood != nil {
		mood = strings.TrimSpace(s.Mood.Emoji + " " + s.Mood.Label)
	}
	f.field(b, "Mood", fmt.Sprintf("%s (%d/10)", mood, s.Intensity))
	f.field(b, "State", s.State.String())

	switch s.State {
	case services.StateFailed:
		b.WriteString(f.bad.Render(s.Error) + "\n")
		if s.MoodLogged {
			b.WriteString(f.muted.Render("Your mood was saved.") + "\n")
		}
	case services.StateReady:
		if s.Support == nil {
			return
		}
		b.WriteString("\n" + s.Support.Message + "\n\n")
		f.section(b, "Things that might help")
		f.list(b, s.Support.Suggestions, "")
		b.WriteString("\n")
		f.section(b, "Support resources")
		for _, r := range s.Support.Resources {
			contact := r.Phone
			if contact == "" {
				contact = r.URL
			}
			if contact == "" {
				contact = r.Text
			}
			fmt.Fprintf(b, "  • %s: %s\n", r.Title, contact)
		}
	}
}

func (f *Formatter) daily(b *strings.Builder, d *models.DailyInsights) {
	s := d.Snapshot
	if s.CurrentMood == nil {
		f.field(b, "Current mood", "Not yet logged")
	} else {
		mood := *s.CurrentMood
		if s.Intensity != nil {
			mood += fmt.Sprintf(" (%s/10)", formatNumber(*s.Intensity))
		}
		f.field(b, "Current mood", mood)
	}
	if s.EntriesCount != nil {
		f.field(b, "Entries today", strconv.Itoa(*s.EntriesCount))
	}
	b.WriteString("\n")

	f.section(b, "Triggers")
	f.list(b, s.Triggers, "No specific triggers identified yet.")
	b.WriteString("\n")

	f.section(b, "Recommended activities")
	if len(d.Recommendations) == 0 {
		b.WriteString("  " + f.muted.Render("Log a mood to see personalized activity recommendations.") + "\n")
	}
	for _, r := range d.Recommendations {
		line := r.Name
		if detail := r.DisplayText(); detail != "" {
			if line == "" {
				line = detail
			} else {
				line += ": " + detail
			}
		}
		fmt.Fprintf(b, "  • %s\n", line)
	}

	if d.BreathingExercise != nil {
		b.WriteString("\n")
		f.section(b, "Breathing exercise")
		b.WriteString(*d.BreathingExercise + "\n")
	}
	f.missing(b, d.Missing)
}

const chartWidth = 20

// chart draws one bar per emotion, scaled to the largest count.
func (f *Formatter) chart(b *strings.Builder, counts []models.EmotionCount) {
	if len(counts) == 0 {
		b.WriteString("  " + f.muted.Render("Not enough data yet.") + "\n")
		return
	}
	peak, pad := 0, 0
	for _, c := range counts {
		peak = max(peak, c.Count)
		pad = max(pad, len(c.Emotion))
	}
	for _, c := range counts {
		bar := 0
		if peak > 0 {
			bar = max(c.Count*chartWidth/peak, 1)
		}
		fmt.Fprintf(b, "  %-*s %s %d\n", pad, c.Emotion, strings.Repeat("█", bar), c.Count)
	}
}

func trendLabel(d models.TrendDirection) string {
	switch d {
	case models.TrendImproving:
		return "📈 Improving"
	case models.TrendDeclining:
		return "📉 Declining"
	case models.TrendStable:
		return "→ Stable"
	default:
		return "Not enough data yet"
	}
}

func (f *Formatter) weekly(b *strings.Builder, w *models.WeeklyInsights) {
	f.field(b, "Total entries", fmt.Sprintf("%d (last 7 days)", w.Snapshot.TotalEntries))
	b.WriteString("\n")

	f.section(b, "Most common emotions")
	top := normalizer.TopEmotions(w.Snapshot.DominantEmotions, 3)
	if len(top) == 0 {
		b.WriteString("  " + f.muted.Render("Log more moods to see which emotions appear most often.") + "\n")
	}
	for _, e := range top {
		fmt.Fprintf(b, "  • %s: %d times\n", e.Emotion, e.Count)
	}
	b.WriteString("\n")

	f.section(b, "Emotion breakdown")
	f.chart(b, w.Emotions)
	b.WriteString("\n")

	f.section(b, "Emotional trend")
	f.field(b, "Direction", trendLabel(w.Trend.Direction))
	stability := "N/A"
	if w.Trend.StabilityScore != nil {
		stability = strconv.FormatFloat(*w.Trend.StabilityScore*100, 'f', 1, 64) + "%"
	}
	f.field(b, "Stability", stability)
	volatility := "N/A"
	switch {
	case w.Trend.Volatility != nil:
		volatility = strconv.FormatFloat(*w.Trend.Volatility, 'f', 1, 64)
	case w.Trend.VolatilityLabel != "":
		volatility = w.Trend.VolatilityLabel
	}
	f.field(b, "Volatility", volatility)

	if w.Snapshot.TrendAnalysis != nil {
		b.WriteString("\n")
		f.field(b, "Analysis", *w.Snapshot.TrendAnalysis)
	}
	if h := w.Snapshot.HabitRecommendations; h != nil {
		b.WriteString("\n")
		f.section(b, "Recommended actions for next week")
		if h.IsText() {
			b.WriteString(h.Text + "\n")
		} else {
			f.list(b, h.Items, "")
		}
	}
	f.missing(b, w.Missing)
}

func (f *Formatter) inference(b *strings.Builder, e models.EmotionInference) {
	emotions := "none detected"
	if len(e.Emotions) > 0 {
		emotions = strings.Join(e.Emotions, ", ")
	}
	f.field(b, "Emotions", emotions)
	if e.Confidence != nil {
		f.field(b, "Confidence", strconv.FormatFloat(*e.Confidence*100, 'f', 0, 64)+"%")
	}
	if e.Intensity != nil {
		f.field(b, "Intensity", formatNumber(*e.Intensity)+"/10")
	}
}

func (f *Formatter) missing(b *strings.Builder, missing []string) {
	if len(missing) == 0 {
		return
	}
	b.WriteString("\n" + f.muted.Render("Some insights are unavailable right now: "+strings.Join(missing, ", ")) + "\n")
}
