package provisioning

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"amat_hosting/internal/config"
	"amat_hosting/internal/domain/entities"
	"amat_hosting/internal/usecase/interfaces"
)

// panelParamOrder is the query parameter order the panel API expects.
var panelParamOrder = []string{"username", "ram", "disk", "cpu", "eggid", "nestid", "loc", "domain", "ptla", "ptlc"}

type panelResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    *struct {
		Name       string          `json:"name"`
		Username   string          `json:"username"`
		Password   string          `json:"password"`
		PanelURL   string          `json:"panelUrl"`
		IP         string          `json:"ip"`
		Port       json.RawMessage `json:"port"`
		ServerID   json.RawMessage `json:"serverId"`
		ServerUUID string          `json:"serverUUID"`
	} `json:"data"`
}

// PanelClient creates servers through the external panel API. Calls are never
// retried; a failure is final for the order.
type PanelClient struct {
	cfg        config.Panel
	httpClient *http.Client
	mockMode   bool
	log        *zap.Logger
}

var _ interfaces.IProvisioner = (*PanelClient)(nil)

func NewPanelClient(cfg config.Panel, mockMode bool, log *zap.Logger) *PanelClient {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &PanelClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		mockMode:   mockMode,
		log:        log.With(zap.String("component", "panel_client")),
	}
}

func (c *PanelClient) Provision(ctx context.Context, order entities.Order, pkg entities.Package) (entities.ServerDetails, error) {
	c.log.Info("provision start", zap.String("order_id", order.OrderID), zap.String("package_id", pkg.ID))

	if c.mockMode {
		return entities.ServerDetails{
			Name:       pkg.DisplayName,
			Username:   order.CustomerRef,
			Password:   strings.ReplaceAll(uuid.NewString(), "-", "")[:12],
			PanelURL:   c.panelURL(""),
			IP:         "N/A",
			Port:       "N/A",
			ServerUUID: uuid.NewString(),
		}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(order, pkg), nil)
	if err != nil {
		return entities.ServerDetails{}, &entities.ProvisioningError{Kind: entities.ProvisioningCallFailed, Message: "build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		msg := "panel call failed"
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			msg = "panel call timed out"
		}
		c.log.Error("provision call failed", zap.String("order_id", order.OrderID), zap.Error(err))
		return entities.ServerDetails{}, &entities.ProvisioningError{Kind: entities.ProvisioningCallFailed, Message: msg, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return entities.ServerDetails{}, &entities.ProvisioningError{Kind: entities.ProvisioningCallFailed, Message: "read response", Err: err}
	}

	var body panelResponse
	if jsonErr := json.Unmarshal(raw, &body); jsonErr != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return entities.ServerDetails{}, &entities.ProvisioningError{Kind: entities.ProvisioningCallFailed, Message: fmt.Sprintf("panel http %d", resp.StatusCode)}
		}
		return entities.ServerDetails{}, &entities.ProvisioningError{Kind: entities.ProvisioningMalformed, Message: "invalid panel response", Err: jsonErr}
	}

	if !body.Success {
		msg := body.Message
		if msg == "" {
			msg = "External API failed"
		}
		if resp.StatusCode >= 500 {
			return entities.ServerDetails{}, &entities.ProvisioningError{Kind: entities.ProvisioningCallFailed, Message: msg}
		}
		c.log.Warn("provision rejected", zap.String("order_id", order.OrderID), zap.String("message", msg))
		return entities.ServerDetails{}, &entities.ProvisioningError{Kind: entities.ProvisioningRejected, Message: msg}
	}
	if body.Data == nil {
		return entities.ServerDetails{}, &entities.ProvisioningError{Kind: entities.ProvisioningMalformed, Message: "panel response without data"}
	}

	d := body.Data
	details := entities.ServerDetails{
		Name:       d.Name,
		Username:   d.Username,
		Password:   d.Password,
		PanelURL:   c.panelURL(d.PanelURL),
		IP:         d.IP,
		Port:       rawScalar(d.Port),
		ServerID:   rawScalar(d.ServerID),
		ServerUUID: d.ServerUUID,
	}
	if details.Name == "" {
		details.Name = order.PackageName
	}
	if details.Name == "" {
		details.Name = pkg.DisplayName
	}
	if details.IP == "" {
		details.IP = "N/A"
	}
	if details.Port == "" {
		details.Port = "N/A"
	}

	c.log.Info("provision success", zap.String("order_id", order.OrderID), zap.String("server_id", details.ServerID))
	return details, nil
}

func (c *PanelClient) buildURL(order entities.Order, pkg entities.Package) string {
	params := map[string]string{
		"username": order.CustomerRef,
		"ram":      strconv.FormatInt(pkg.Resources.MemoryMB, 10),
		"disk":     strconv.FormatInt(pkg.Resources.DiskMB, 10),
		"cpu":      strconv.FormatInt(pkg.Resources.CPUPercent, 10),
		"eggid":    strconv.FormatInt(pkg.Resources.EggID, 10),
		"nestid":   strconv.FormatInt(pkg.Resources.NestID, 10),
		"loc":      strconv.FormatInt(pkg.Resources.LocationID, 10),
		"domain":   c.cfg.Domain,
		"ptla":     c.cfg.PTLA,
		"ptlc":     c.cfg.PTLC,
	}
	parts := make([]string, 0, len(panelParamOrder))
	for _, name := range panelParamOrder {
		parts = append(parts, name+"="+url.QueryEscape(params[name]))
	}
	return c.cfg.APIURL + "?" + strings.Join(parts, "&")
}

func (c *PanelClient) panelURL(fromAPI string) string {
	if fromAPI != "" {
		return fromAPI
	}
	return "https://" + c.cfg.Domain
}

// rawScalar renders a JSON string or number as text; null and absent are "".
func rawScalar(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return ""
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str
	}
	return s
}
