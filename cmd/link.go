package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/deeponelabs/deepone-go/internal/application"
	"github.com/deeponelabs/deepone-go/internal/domain"
	"github.com/spf13/cobra"
)

func newLinkCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Create trackable links",
	}

	cmd.AddCommand(newLinkCreateCmd(a))
	return cmd
}

type linkFlags struct {
	path               string
	name               string
	description        string
	title              string
	previewDescription string
	imageURL           string
	utmSource          string
	utmMedium          string
	utmCampaign        string
	utmTerm            string
	utmContent         string
	params             []string
}

func (f linkFlags) request() (*domain.LinkRequest, error) {
	request := domain.NewLinkRequest(f.path, f.name).
		WithDescription(f.description).
		WithPreviewTitle(f.title).
		WithPreviewDescription(f.previewDescription).
		WithPreviewImageURL(f.imageURL).
		WithUTMSource(f.utmSource).
		WithUTMMedium(f.utmMedium).
		WithUTMCampaign(f.utmCampaign).
		WithUTMTerm(f.utmTerm).
		WithUTMContent(f.utmContent)

	for _, raw := range f.params {
		key, value, ok := strings.Cut(raw, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --param %q: expected key=value", raw)
		}
		request.WithCustomParameter(key, value)
	}

	return request, nil
}

func newLinkCreateCmd(a *app) *cobra.Command {
	var (
		flags  linkFlags
		dryRun bool
		dev    bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a trackable link through the attribution service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			request, err := flags.request()
			if err != nil {
				return err
			}

			if dryRun {
				return writeLinkParameters(cmd, request)
			}

			sess, err := a.newSession()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			err = sess.engine.Configure(ctx, application.ConfigureOptions{
				DevelopmentMode:    dev || a.cfg.DevelopmentMode,
				Handler:            func(domain.Result[domain.AttributionRecord]) {},
				SkipDeferredLookup: true,
			})
			if err != nil {
				return errors.Join(fmt.Errorf("configure attribution engine: %w", err), sess.finish())
			}

			link, err := sess.engine.CreateLinkAwait(ctx, request)
			if closeErr := sess.finish(); closeErr != nil {
				err = errors.Join(err, fmt.Errorf("close secure store: %w", closeErr))
			}
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), link)
			return err
		},
	}

	cmd.Flags().StringVar(&flags.path, "path", "", "Destination path inside the app")
	cmd.Flags().StringVar(&flags.name, "name", "", "Link identifier")
	cmd.Flags().StringVar(&flags.description, "description", "", "Link description")
	cmd.Flags().StringVar(&flags.title, "title", "", "Social preview title")
	cmd.Flags().StringVar(&flags.previewDescription, "preview-description", "", "Social preview description")
	cmd.Flags().StringVar(&flags.imageURL, "image-url", "", "Social preview image URL")
	cmd.Flags().StringVar(&flags.utmSource, "utm-source", "", "utm_source value")
	cmd.Flags().StringVar(&flags.utmMedium, "utm-medium", "", "utm_medium value")
	cmd.Flags().StringVar(&flags.utmCampaign, "utm-campaign", "", "utm_campaign value")
	cmd.Flags().StringVar(&flags.utmTerm, "utm-term", "", "utm_term value")
	cmd.Flags().StringVar(&flags.utmContent, "utm-content", "", "utm_content value")
	cmd.Flags().StringArrayVar(&flags.params, "param", nil, "Custom parameter as key=value (repeatable)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the request parameters without calling the service")
	cmd.Flags().BoolVar(&dev, "dev", false, "Use the test API key")

	return cmd
}

func writeLinkParameters(cmd *cobra.Command, request *domain.LinkRequest) error {
	params, err := request.Build()
	if err != nil {
		return err
	}

	raw, err := params.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode link parameters: %w", err)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		return fmt.Errorf("format link parameters: %w", err)
	}
	pretty.WriteByte('\n')

	_, err = cmd.OutOrStdout().Write(pretty.Bytes())
	return err
}
