package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rpupo63/artist-portfolio-backend/errs"
	"github.com/rpupo63/artist-portfolio-backend/models"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var language string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects per language",
		RunE: func(cmd *cobra.Command, args []string) error {
			languages := models.Languages
			if language != "" {
				lang, err := models.ParseLanguage(language)
				if err != nil {
					return err
				}
				languages = []models.Language{lang}
			}

			catalog, err := ctx.open().CatalogRepo().ListAll(cmd.Context())
			if err != nil {
				return err
			}

			var rows [][]string
			for _, lang := range languages {
				for _, p := range catalog.Partition(lang).Projects() {
					rows = append(rows, []string{
						lang.String(),
						p.ID,
						p.Slug,
						p.Title,
						p.Category,
						strconv.FormatBool(p.Featured),
						strconv.Itoa(len(models.MediaPaths(p))),
						p.CoverImage,
					})
				}
			}

			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, "No projects")
				return nil
			}
			headers := []string{"Lang", "ID", "Slug", "Title", "Category", "Featured", "Media", "Cover"}
			fmt.Fprintln(out, renderTable(headers, rows, map[int]bool{6: true}))
			return nil
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "Only list one language (en or fr)")
	return cmd
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	var language string

	cmd := &cobra.Command{
		Use:   "show <project-id>",
		Short: "Show one project and its media",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, err := models.ParseLanguage(language)
			if err != nil {
				return err
			}

			p, err := ctx.open().CatalogRepo().FindByID(cmd.Context(), lang, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s) %s\n", p.Title, lang, p.Slug)
			fmt.Fprintf(out, "cover: %s\nthumbnail: %s\n", p.CoverImage, p.ThumbnailImage)

			var rows [][]string
			for i, path := range models.MediaPaths(p) {
				cover := ""
				if path == p.CoverImage {
					cover = "*"
				}
				rows = append(rows, []string{strconv.Itoa(i + 1), path, cover})
			}
			if len(rows) == 0 {
				fmt.Fprintln(out, "No media")
				return nil
			}
			fmt.Fprintln(out, renderTable([]string{"#", "Path", "Cover"}, rows, map[int]bool{0: true}))
			return nil
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "Language partition to read (default fr)")
	return cmd
}

func newMigrateMediaCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate-media",
		Short: "Build media lists for projects that only have a gallery",
		RunE: func(cmd *cobra.Command, args []string) error {
			migrated, err := ctx.open().CatalogRepo().MigrateMedia(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Migrated %d project(s)\n", migrated)
			return nil
		},
	}
}

func newRepairCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "repair",
		Short: "Point every cover image at an existing media item",
		RunE: func(cmd *cobra.Command, args []string) error {
			repaired, err := ctx.open().CatalogRepo().RepairAll(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Repaired %d project(s)\n", repaired)
			return nil
		},
	}
}

func newRemoveMediaCommand(ctx *commandContext) *cobra.Command {
	var language string

	cmd := &cobra.Command{
		Use:   "remove-media <project-id> <path>",
		Short: "Remove a media item from a project and promote a new cover if needed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, err := models.ParseLanguage(language)
			if err != nil {
				return err
			}
			id, path := args[0], args[1]

			var cover string
			err = ctx.open().CatalogRepo().Mutate(cmd.Context(), "remove_media", func(catalog *models.Catalog) error {
				project := catalog.Partition(lang).Get(id)
				if project == nil {
					return errs.NewNotFound("project")
				}
				models.NormalizeMedia(project)
				if !models.RemoveMedia(project, path) {
					return errs.NewInvalidFieldError("path", fmt.Sprintf("%s is not part of project %s", path, id))
				}
				if other := catalog.Partition(lang.Other()).Get(id); other != nil {
					models.MirrorSharedFields(other, project)
				}
				cover = project.CoverImage
				return nil
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from %s (cover: %q)\n", path, id, cover)
			return nil
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "Language partition to edit (default fr)")
	return cmd
}
