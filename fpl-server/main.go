package main

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/johnhowardroberts/fpl-live-table/internal/config"
	"github.com/johnhowardroberts/fpl-live-table/internal/telemetry"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ServerConfig carries the file-layout settings every tool needs.
type ServerConfig struct {
	RawRoot     string
	PeriodsPath string
	LeagueID    int
}

type LiveTableArgs struct {
	LeagueID int    `json:"league_id" jsonschema:"Classic league id (0 = configured default)"`
	GW       int    `json:"gw" jsonschema:"Gameweek (0 = current)"`
	View     string `json:"view" jsonschema:"Ranking view: period|gameweek (default period)"`
	Period   string `json:"period" jsonschema:"Period name from periods.yaml (default: period containing the gameweek)"`
}

type ManagerScoreArgs struct {
	LeagueID int `json:"league_id" jsonschema:"Classic league id (0 = configured default)"`
	EntryID  int `json:"entry_id" jsonschema:"Entry id (required)"`
	GW       int `json:"gw" jsonschema:"Gameweek (0 = current)"`
}

type BonusStatusArgs struct {
	GW int `json:"gw" jsonschema:"Gameweek (0 = current)"`
}

type GameweekStatusArgs struct{}

type ToolsHelpArgs struct{}

type toolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func main() {
	defaults := config.Load()
	var (
		addr        = flag.String("addr", defaults.Addr, "HTTP listen address")
		mcpPath     = flag.String("path", defaults.MCPPath, "HTTP path for MCP endpoint")
		rawRoot     = flag.String("raw-root", defaults.RawRoot, "root directory for raw JSON snapshots")
		periodsPath = flag.String("periods", defaults.PeriodsPath, "periods.yaml path")
		leagueID    = flag.Int("league", defaults.LeagueID, "default classic league id")
		requireAuth = flag.Bool("require-auth", false, "require API key auth via FPL_API_KEY")
		authHeader  = flag.String("auth-header", "X-API-Key", "HTTP header to read API key from")
		logLevel    = flag.String("log-level", defaults.LogLevel, "log level: debug|info|warn|error")
	)
	flag.Parse()

	telemetry.Init(telemetry.ParseLogLevel(*logLevel))

	cfg := ServerConfig{
		RawRoot:     *rawRoot,
		PeriodsPath: *periodsPath,
		LeagueID:    *leagueID,
	}

	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "fpl-live-table",
			Version: "1.0.0",
		},
		nil,
	)

	registry := make([]toolInfo, 0, 8)

	addTool(server, &registry, &mcp.Tool{
		Name:        "live_table",
		Description: "Ranked live league table for a period or single gameweek, with rank movement",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args LiveTableArgs) (*mcp.CallToolResult, any, error) {
		out, err := buildLiveTable(cfg, args)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolMarshal(out)
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "manager_score",
		Description: "One manager's scored roster with confirmed and pending substitutions",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args ManagerScoreArgs) (*mcp.CallToolResult, any, error) {
		if args.EntryID == 0 {
			return toolError(fmt.Errorf("entry_id is required")), nil, nil
		}
		out, err := buildManagerScore(cfg, args)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolMarshal(out)
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "bonus_status",
		Description: "Per-fixture bonus allocations, official or provisional from BPS",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args BonusStatusArgs) (*mcp.CallToolResult, any, error) {
		out, err := buildBonusStatus(cfg, args)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolMarshal(out)
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "gameweek_status",
		Description: "Fixture progress for the active gameweek, including bonus-pending fixtures",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args GameweekStatusArgs) (*mcp.CallToolResult, any, error) {
		out, err := buildGameweekStatus(cfg)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolMarshal(out)
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "tools_help",
		Description: "List every tool this server exposes with a short description",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args ToolsHelpArgs) (*mcp.CallToolResult, any, error) {
		return toolMarshal(map[string]any{"tools": registry})
	})

	handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})

	apiKey := strings.TrimSpace(os.Getenv("FPL_API_KEY"))
	if *requireAuth && apiKey == "" {
		telemetry.Errorf("FPL_API_KEY is required (set env var or run with --require-auth=false)")
		os.Exit(1)
	}

	withAuth := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" {
				next(w, r)
				return
			}
			key := strings.TrimSpace(r.Header.Get(*authHeader))
			if key == "" {
				if authz := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
					key = strings.TrimSpace(authz[7:])
				}
			}
			if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized"}`))
				return
			}
			next(w, r)
		}
	}

	http.HandleFunc("/health", withAuth(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}))

	http.HandleFunc("/tools", withAuth(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		b, _ := json.MarshalIndent(map[string]any{"tools": registry}, "", "  ")
		w.Write(b)
	}))

	http.HandleFunc(*mcpPath, withAuth(func(w http.ResponseWriter, r *http.Request) {
		handler.ServeHTTP(w, r)
	}))

	telemetry.Infof("MCP HTTP server listening on %s%s", *addr, *mcpPath)
	if err := http.ListenAndServe(*addr, nil); err != nil {
		telemetry.Errorf("server: %v", err)
		os.Exit(1)
	}
}

func addTool[T any](server *mcp.Server, registry *[]toolInfo, tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error)) {
	*registry = append(*registry, toolInfo{Name: tool.Name, Description: tool.Description})
	mcp.AddTool(server, tool, handler)
}

func toolMarshal(v any) (*mcp.CallToolResult, any, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolJSONBytes(b), nil, nil
}

func toolJSONBytes(res []byte) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(res)},
		},
	}
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
