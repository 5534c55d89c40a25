package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/agenthands/notekeeper/internal/core/model"
	"github.com/agenthands/notekeeper/internal/query"
)

// ClearMemoryCommand empties the saved conversation.
const ClearMemoryCommand = "清除記憶"

var (
	okColor   = color.New(color.FgGreen)
	failColor = color.New(color.FgRed)
	infoColor = color.New(color.FgCyan)
	chatColor = color.New(color.FgYellow)
)

func init() {
	RootCmd.AddCommand(&cobra.Command{
		Use:   "chat",
		Short: "Start the interactive loop (default)",
		RunE:  runChat,
	})
}

func runChat(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	r := &repl{
		router: a.router,
		memory: a.memory,
		query:  a.query,
		out:    cmd.OutOrStdout(),
	}
	return r.run(cmd.Context(), os.Stdin)
}

type utteranceRouter interface {
	Route(ctx context.Context, utterance string) (model.Outcome, error)
}

type memoryClearer interface {
	Clear() error
}

type repl struct {
	router utteranceRouter
	memory memoryClearer
	query  *query.Service
	out    io.Writer
}

func (r *repl) run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(r.out, "請輸入一句話（輸入 q 離開）：")
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return scanner.Err()
		}
		text := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(text, "q") {
			fmt.Fprintln(r.out, "再見！")
			return nil
		}
		if text == "" {
			continue
		}
		r.handle(ctx, text)
	}
}

func (r *repl) handle(ctx context.Context, text string) {
	switch {
	case text == ClearMemoryCommand:
		if err := r.memory.Clear(); err != nil {
			failColor.Fprintf(r.out, "清除記憶失敗：%v\n", err)
			return
		}
		okColor.Fprintln(r.out, "已清除記憶！")

	case query.IsQuery(text):
		r.runQuery(ctx, text)

	default:
		outcome, err := r.router.Route(ctx, text)
		if err != nil {
			failColor.Fprintf(r.out, "儲存失敗：%v\n", err)
			return
		}
		printOutcome(r.out, outcome)
	}
}

func (r *repl) runQuery(ctx context.Context, text string) {
	cmd, ok := query.ParseCommand(text)
	if !ok {
		infoColor.Fprintln(r.out, query.Usage)
		return
	}

	switch cmd.Collection {
	case query.Items:
		seq, err := r.query.Items(ctx, cmd.Filter)
		if err != nil {
			failColor.Fprintf(r.out, "讀取物品記錄失敗：%v\n", err)
			return
		}
		printItems(r.out, query.Collect(seq))
	case query.Schedules:
		seq, err := r.query.Schedules(ctx, cmd.Filter)
		if err != nil {
			failColor.Fprintf(r.out, "讀取時程安排失敗：%v\n", err)
			return
		}
		printSchedules(r.out, query.Collect(seq))
	}
}

func printOutcome(w io.Writer, o model.Outcome) {
	switch o.Kind {
	case model.OutcomeRecorded:
		if it := o.Item; it != nil {
			okColor.Fprintf(w, "已記錄物品：%s 的「%s」放在 %s（%s）\n", it.Owner, it.Item, it.Location, it.PlaceCategory)
		}
		if s := o.Schedule; s != nil {
			okColor.Fprintf(w, "已記錄行程：%s 在 %s%s 要「%s」地點：%s（%s）\n",
				s.Person, s.TimeExpression, resolvedSuffix(s.ResolvedDate), s.Task, s.Location, s.PlaceCategory)
		}
	case model.OutcomeExtractionFailed:
		if o.Intent == model.IntentSchedule {
			failColor.Fprintln(w, "無法擷取完整的時程資訊")
		} else {
			failColor.Fprintln(w, "無法擷取完整的物品資訊")
		}
	case model.OutcomeChatReply:
		chatColor.Fprintln(w, o.Reply)
	}
}

func resolvedSuffix(date *string) string {
	if date == nil {
		return ""
	}
	return "（" + *date + "）"
}

func printItems(w io.Writer, items []model.ItemRecord) {
	if len(items) == 0 {
		failColor.Fprintln(w, "查無結果。")
		return
	}
	infoColor.Fprintf(w, "查到 %d 筆物品記錄：\n", len(items))
	for _, r := range items {
		fmt.Fprintf(w, " - [%s] %s 的「%s」放在 %s（%s）\n",
			r.CreatedAt.Format("2006-01-02 15:04:05"), r.Owner, r.Item, r.Location, r.PlaceCategory)
	}
}

func printSchedules(w io.Writer, schedules []model.ScheduleRecord) {
	if len(schedules) == 0 {
		failColor.Fprintln(w, "查無結果。")
		return
	}
	infoColor.Fprintf(w, "查到 %d 筆時程安排：\n", len(schedules))
	for _, r := range schedules {
		fmt.Fprintf(w, " - [%s] %s 在 %s%s 要「%s」地點：%s（%s）\n",
			r.CreatedAt.Format("2006-01-02 15:04:05"), r.Person, r.TimeExpression, resolvedSuffix(r.ResolvedDate), r.Task, r.Location, r.PlaceCategory)
	}
}
