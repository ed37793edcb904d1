// Command-line chat against the Mzizi advisor core.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"mzizi/mzizi/catalog"
	"mzizi/mzizi/config"
	"mzizi/mzizi/services/advisor"
	"mzizi/mzizi/sessions"
	"mzizi/mzizi/sources/kv"
	"mzizi/mzizi/types"
	"mzizi/mzizi/utils/jsonutils"
	"mzizi/mzizi/utils/logging"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	logging.InitLogger()
	cfg := config.LoadConfig()
	ctx := context.Background()

	args := os.Args[1:]
	if len(args) < 1 || args[0] != "chat" {
		fmt.Println("Mzizi CLI usage:")
		fmt.Println("  mzizi chat   # Talk to the advisor in this terminal")
		os.Exit(1)
	}

	var adv sessions.Advisor
	switch {
	case cfg.GeminiAPIKey != "":
		gemini, err := advisor.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logging.ErrorLogger.Error("gemini init error", zap.Error(err))
			os.Exit(1)
		}
		adv = gemini
	case cfg.AdvisorBaseURL != "":
		adv = advisor.NewHTTPClient(cfg.AdvisorBaseURL, cfg.AdvisorAPIKey)
	default:
		fmt.Println("No advisor configured (GEMINI_API_KEY / ADVISOR_BASE_URL); replies are canned.")
		adv = &advisor.Mock{}
	}

	profile := types.BusinessProfile{
		ID:           fmt.Sprintf("cli-%s", uuid.New().String()[:8]),
		OwnerName:    getEnvDefault("MZIZI_OWNER", "there"),
		BusinessName: getEnvDefault("MZIZI_BUSINESS", "your business"),
		Currency:     getEnvDefault("MZIZI_CURRENCY", "USD"),
	}

	adapter := sessions.NewAdapter(kv.NewMemory())
	ctrl := sessions.NewController(adapter, catalog.Load(cfg.ToolsFile), adv)
	ctrl.SetProfile(ctx, profile)

	active, _ := ctrl.Active()
	fmt.Println("Session:", active.ID)
	for _, m := range active.Messages {
		fmt.Printf("advisor> %s\n", m.Text)
	}
	fmt.Println("Type your question, '/branch <message_id>' to fork, or 'exit' to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("you> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "exit" || line == "quit" {
			fmt.Println("Goodbye!")
			break
		}
		if line == "" {
			continue
		}

		if rest, ok := strings.CutPrefix(line, "/branch "); ok {
			active, _ = ctrl.Active()
			branched, ok := ctrl.Branch(active.ID, strings.TrimSpace(rest))
			if !ok {
				fmt.Println("no such message in this session")
				continue
			}
			fmt.Println("Branched into session:", branched.ID)
			continue
		}

		active, _ = ctrl.Active()
		reply, ok := ctrl.Send(ctx, active.ID, line)
		if !ok {
			fmt.Println("session vanished, starting a new one")
			ctrl.NewChat()
			continue
		}
		fmt.Printf("advisor> %s\n", reply.Text)
		if reply.StructuredAdvice != nil {
			fmt.Println(jsonutils.ToJSON(reply.StructuredAdvice))
		}
		if reply.Pricing != nil {
			fmt.Println(jsonutils.ToJSON(reply.Pricing))
		}
	}
}

func getEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
