package cli

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/pmdadmin/internal/client/api"
	"github.com/dmitrijs2005/pmdadmin/internal/server/auth"
	"github.com/dmitrijs2005/pmdadmin/internal/server/models"
	"github.com/dmitrijs2005/pmdadmin/internal/server/services"
	"github.com/urfave/cli/v3"
)

func (a *App) loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Store the server URL and bearer token",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, path, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.String("token") == "" {
				tok, err := GetSecret("Token", a.out)
				if err != nil {
					return err
				}
				cfg.Token = tok
			}
			c := api.NewClient(cfg.Server, cfg.Token, cfg.Timeout.Duration)
			if _, err := c.Stats(ctx); err != nil {
				return fmt.Errorf("token rejected: %w", err)
			}
			if err := cfg.Save(path); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "logged in to %s\n", cfg.Server)
			return nil
		},
	}
}

func (a *App) tokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "Token helpers",
		Commands: []*cli.Command{
			{
				Name:  "mint",
				Usage: "Sign an admin token with the server's JWT secret",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true, Usage: "admin email carried in the token"},
					&cli.DurationFlag{Name: "ttl", Value: 12 * time.Hour, Usage: "token lifetime"},
					&cli.StringFlag{Name: "secret", Usage: "JWT secret; prompted when omitted"},
					&cli.BoolFlag{Name: "save", Usage: "store the token in the settings file"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					secret := cmd.String("secret")
					if secret == "" {
						s, err := GetSecret("JWT secret", a.out)
						if err != nil {
							return err
						}
						secret = s
					}
					tok, err := auth.GenerateToken(cmd.String("email"), []byte(secret), cmd.Duration("ttl"))
					if err != nil {
						return err
					}
					if cmd.Bool("save") {
						cfg, path, err := a.loadConfig(cmd)
						if err != nil {
							return err
						}
						cfg.Token = tok
						if err := cfg.Save(path); err != nil {
							return err
						}
					}
					fmt.Fprintln(a.out, tok)
					return nil
				},
			},
		},
	}
}

func (a *App) healthCommand() *cli.Command {
	return &cli.Command{
		Name:  "health",
		Usage: "Check that the server and its database answer",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			c, err := a.client(cmd)
			if err != nil {
				return err
			}
			if err := c.Health(ctx); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "ok")
			return nil
		},
	}
}

func (a *App) catalogCommand(name, usage string) *cli.Command {
	kind := models.CatalogKind(name)
	return &cli.Command{
		Name:  name,
		Usage: usage,
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "Show the reconciled listing",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					c, err := a.client(cmd)
					if err != nil {
						return err
					}
					items, err := c.ListCatalog(ctx, kind)
					if err != nil {
						return err
					}
					if cmd.Bool("json") {
						return printJSON(a.out, items)
					}
					rows := make([][]string, 0, len(items))
					for _, e := range items {
						rows = append(rows, []string{e.Title, deref(e.Category), string(e.Source), formatTime(e.CreatedAt), e.Locator})
					}
					printTable(a.out, []string{"TITLE", "CATEGORY", "SOURCE", "CREATED", "URL"}, rows)
					return nil
				},
			},
			{
				Name:      "upload",
				Usage:     "Upload a file",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title"},
					&cli.StringFlag{Name: "category"},
					&cli.StringFlag{Name: "description"},
					&cli.StringFlag{Name: "target", Value: services.TargetStore, Usage: "store or catalog"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					path := cmd.Args().First()
					if path == "" {
						return errors.New("file argument is required")
					}
					f, err := os.Open(path)
					if err != nil {
						return err
					}
					defer f.Close()

					c, err := a.client(cmd)
					if err != nil {
						return err
					}
					res, err := c.UploadCatalog(ctx, kind, api.Upload{
						Target:      cmd.String("target"),
						Title:       cmd.String("title"),
						Category:    cmd.String("category"),
						Description: cmd.String("description"),
						FileName:    filepath.Base(path),
						ContentType: mime.TypeByExtension(filepath.Ext(path)),
						Body:        f,
					})
					if err != nil {
						return err
					}
					if cmd.Bool("json") {
						return printJSON(a.out, res)
					}
					printKV(a.out, [][2]string{
						{"title", res.Title},
						{"target", res.Target},
						{"url", res.URL},
						{"record", orDash(res.RecordID)},
					})
					return nil
				},
			},
			{
				Name:  "delete",
				Usage: "Delete by record id or by title",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "record-id"},
					&cli.StringFlag{Name: "title"},
					&cli.StringFlag{Name: "file-id"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					c, err := a.client(cmd)
					if err != nil {
						return err
					}
					err = c.DeleteCatalog(ctx, kind, api.DeleteRequest{
						RecordID: cmd.String("record-id"),
						Title:    cmd.String("title"),
						FileID:   cmd.String("file-id"),
					})
					if err != nil {
						return err
					}
					fmt.Fprintln(a.out, "deleted")
					return nil
				},
			},
		},
	}
}

func (a *App) ranksCommand() *cli.Command {
	return &cli.Command{
		Name:  "ranks",
		Usage: "Rank master",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Flags: []cli.Flag{&cli.BoolFlag{Name: "all", Usage: "include inactive ranks"}},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					c, err := a.client(cmd)
					if err != nil {
						return err
					}
					ranks, err := c.ListRanks(ctx, cmd.Bool("all"))
					if err != nil {
						return err
					}
					if cmd.Bool("json") {
						return printJSON(a.out, ranks)
					}
					rows := make([][]string, 0, len(ranks))
					for _, r := range ranks {
						rows = append(rows, []string{
							r.ID, r.Label, string(r.StaffCategory), strconv.Itoa(r.SeniorityOrder),
							strconv.FormatBool(r.RequiresSecondaryID), strconv.FormatBool(r.Active),
						})
					}
					printTable(a.out, []string{"ID", "LABEL", "STAFF", "ORDER", "METAL NO.", "ACTIVE"}, rows)
					return nil
				},
			},
			{
				Name:      "resolve",
				Usage:     "Resolve a free-form rank label",
				ArgsUsage: "LABEL",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					label := strings.Join(cmd.Args().Slice(), " ")
					if label == "" {
						return errors.New("label argument is required")
					}
					c, err := a.client(cmd)
					if err != nil {
						return err
					}
					res, err := c.ResolveRank(ctx, label)
					if err != nil {
						return err
					}
					if cmd.Bool("json") {
						return printJSON(a.out, res)
					}
					if res.Rank == nil {
						fmt.Fprintf(a.out, "no rank matches %q\n", label)
						return nil
					}
					printKV(a.out, [][2]string{
						{"id", res.Rank.ID},
						{"label", res.Rank.Label},
						{"requires metal number", strconv.FormatBool(res.RequiresSecondaryID)},
					})
					return nil
				},
			},
		},
	}
}

func (a *App) employeesCommand() *cli.Command {
	return &cli.Command{
		Name:  "employees",
		Usage: "List employees, one per KGID",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "district"},
			&cli.StringFlag{Name: "station"},
			&cli.StringFlag{Name: "rank"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			c, err := a.client(cmd)
			if err != nil {
				return err
			}
			list, err := c.ListEmployees(ctx, services.EmployeeFilter{
				District: cmd.String("district"),
				Station:  cmd.String("station"),
				Rank:     cmd.String("rank"),
			})
			if err != nil {
				return err
			}
			if cmd.Bool("json") {
				return printJSON(a.out, list)
			}
			rows := make([][]string, 0, len(list))
			for _, e := range list {
				rows = append(rows, []string{e.KGID, e.Name, orDash(e.DisplayRank), orDash(e.District), orDash(e.Station), orDash(e.Mobile1)})
			}
			printTable(a.out, []string{"KGID", "NAME", "RANK", "DISTRICT", "STATION", "MOBILE"}, rows)
			return nil
		},
	}
}

func (a *App) registrationsCommand() *cli.Command {
	idAction := func(fn func(ctx context.Context, c *api.Client, id string) error) cli.ActionFunc {
		return func(ctx context.Context, cmd *cli.Command) error {
			id := cmd.Args().First()
			if id == "" {
				return errors.New("registration id is required")
			}
			c, err := a.client(cmd)
			if err != nil {
				return err
			}
			return fn(ctx, c, id)
		}
	}
	return &cli.Command{
		Name:  "registrations",
		Usage: "Pending self-registrations",
		Commands: []*cli.Command{
			{
				Name: "list",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					c, err := a.client(cmd)
					if err != nil {
						return err
					}
					list, err := c.ListRegistrations(ctx)
					if err != nil {
						return err
					}
					if cmd.Bool("json") {
						return printJSON(a.out, list)
					}
					rows := make([][]string, 0, len(list))
					for _, r := range list {
						rows = append(rows, []string{r.ID, r.KGID, r.Name, orDash(r.Rank), orDash(r.District), formatTime(r.SubmittedAt)})
					}
					printTable(a.out, []string{"ID", "KGID", "NAME", "RANK", "DISTRICT", "SUBMITTED"}, rows)
					return nil
				},
			},
			{
				Name:      "approve",
				ArgsUsage: "ID",
				Action: idAction(func(ctx context.Context, c *api.Client, id string) error {
					e, err := c.ApproveRegistration(ctx, id)
					if err != nil {
						return err
					}
					fmt.Fprintf(a.out, "approved %s (%s)\n", e.Name, e.KGID)
					return nil
				}),
			},
			{
				Name:      "reject",
				ArgsUsage: "ID",
				Action: idAction(func(ctx context.Context, c *api.Client, id string) error {
					if err := c.RejectRegistration(ctx, id); err != nil {
						return err
					}
					fmt.Fprintf(a.out, "rejected %s\n", id)
					return nil
				}),
			},
		},
	}
}

func (a *App) notifyCommand() *cli.Command {
	return &cli.Command{
		Name:  "notify",
		Usage: "Queue a push notification",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Required: true},
			&cli.StringFlag{Name: "body", Required: true},
			&cli.StringFlag{Name: "target", Value: string(models.TargetAll), Usage: "ALL, DISTRICT, STATION or ADMIN"},
			&cli.StringFlag{Name: "district"},
			&cli.StringFlag{Name: "station"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			c, err := a.client(cmd)
			if err != nil {
				return err
			}
			n, err := c.Notify(ctx, models.Notification{
				Title:          cmd.String("title"),
				Body:           cmd.String("body"),
				TargetType:     models.NotificationTarget(strings.ToUpper(cmd.String("target"))),
				TargetDistrict: cmd.String("district"),
				TargetStation:  cmd.String("station"),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "queued %s (%s)\n", n.ID, n.Status)
			return nil
		},
	}
}

func (a *App) statsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Dashboard counters",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			c, err := a.client(cmd)
			if err != nil {
				return err
			}
			st, err := c.Stats(ctx)
			if err != nil {
				return err
			}
			if cmd.Bool("json") {
				return printJSON(a.out, st)
			}
			printKV(a.out, [][2]string{
				{"employees", strconv.Itoa(st.TotalEmployees)},
				{"approved", strconv.Itoa(st.ApprovedEmployees)},
				{"pending approval", strconv.Itoa(st.PendingApprovals)},
				{"pending registrations", strconv.Itoa(st.PendingRequests)},
				{"officers", strconv.Itoa(st.TotalOfficers)},
				{"districts", strconv.Itoa(st.TotalDistricts)},
				{"stations", strconv.Itoa(st.TotalStations)},
			})
			return nil
		},
	}
}
