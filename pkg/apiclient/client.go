package apiclient

import (
	"chaos_backend/internal/model"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client is the typed HTTP client for the recruitment API. It unwraps the
// server's {code, message, data} envelope and satisfies reconcile.API, so a
// reconcile.Session can run against a live server.
type Client struct {
	http *resty.Client
}

// envelope mirrors util.Response with the payload left raw so each call can
// decode its own type.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func NewClient(baseURL, token string) *Client {
	// No retries: each request is attempted once per user action, and
	// answer creation is not idempotent.
	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetHeader("Content-Type", "application/json")
	if token != "" {
		http.SetAuthToken(token)
	}
	return &Client{http: http}
}

// SetToken swaps the bearer token, e.g. after login.
func (c *Client) SetToken(token string) {
	c.http.SetAuthToken(token)
}

func (c *Client) do(ctx context.Context, method, url string, body interface{}, out interface{}) error {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, url)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, url, err)
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return fmt.Errorf("%s %s: decoding response: %w", method, url, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%s %s: server returned %d: %s", method, url, env.Code, env.Message)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%s %s: decoding payload: %w", method, url, err)
		}
	}
	return nil
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates and installs the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, resty.MethodPost, "/api/login", Credentials{Email: email, Password: password}, &out); err != nil {
		return err
	}
	c.SetToken(out.Token)
	return nil
}

func (c *Client) GetCampaign(ctx context.Context, campaignID uint) (*model.Campaign, error) {
	var campaign model.Campaign
	err := c.do(ctx, resty.MethodGet, fmt.Sprintf("/api/campaigns/%d", campaignID), nil, &campaign)
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (c *Client) ListPublishedCampaigns(ctx context.Context) ([]model.Campaign, error) {
	var campaigns []model.Campaign
	err := c.do(ctx, resty.MethodGet, "/api/campaigns", nil, &campaigns)
	return campaigns, err
}

func (c *Client) GetCampaignRoles(ctx context.Context, campaignID uint) ([]model.CampaignRole, error) {
	var roles []model.CampaignRole
	err := c.do(ctx, resty.MethodGet, fmt.Sprintf("/api/campaigns/%d/roles", campaignID), nil, &roles)
	return roles, err
}

func (c *Client) GetCommonQuestions(ctx context.Context, campaignID uint) ([]model.Question, error) {
	var questions []model.Question
	err := c.do(ctx, resty.MethodGet, fmt.Sprintf("/api/campaigns/%d/questions", campaignID), nil, &questions)
	return questions, err
}

func (c *Client) GetRoleQuestions(ctx context.Context, campaignID, roleID uint) ([]model.Question, error) {
	var questions []model.Question
	err := c.do(ctx, resty.MethodGet, fmt.Sprintf("/api/campaigns/%d/roles/%d/questions", campaignID, roleID), nil, &questions)
	return questions, err
}

func (c *Client) CreateOrGetApplication(ctx context.Context, campaignID uint) (uint, error) {
	var app model.Application
	err := c.do(ctx, resty.MethodPost, fmt.Sprintf("/api/campaigns/%d/applications", campaignID), nil, &app)
	if err != nil {
		return 0, err
	}
	return app.ID, nil
}

func (c *Client) GetCommonApplicationAnswers(ctx context.Context, applicationID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := c.do(ctx, resty.MethodGet, fmt.Sprintf("/api/applications/%d/answers", applicationID), nil, &answers)
	return answers, err
}

func (c *Client) GetApplicationAnswers(ctx context.Context, applicationID, roleID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := c.do(ctx, resty.MethodGet, fmt.Sprintf("/api/applications/%d/roles/%d/answers", applicationID, roleID), nil, &answers)
	return answers, err
}

type answerPayload struct {
	QuestionID uint               `json:"questionId"`
	AnswerType model.QuestionType `json:"answer_type"`
	AnswerData json.RawMessage    `json:"answer_data"`
}

func (c *Client) CreateAnswer(ctx context.Context, applicationID, questionID uint, answerType model.QuestionType, data []byte) (*model.Answer, error) {
	var answer model.Answer
	payload := answerPayload{QuestionID: questionID, AnswerType: answerType, AnswerData: data}
	err := c.do(ctx, resty.MethodPost, fmt.Sprintf("/api/applications/%d/answers", applicationID), payload, &answer)
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

func (c *Client) UpdateAnswer(ctx context.Context, answerID, questionID uint, answerType model.QuestionType, data []byte) error {
	payload := answerPayload{QuestionID: questionID, AnswerType: answerType, AnswerData: data}
	return c.do(ctx, resty.MethodPut, fmt.Sprintf("/api/answers/%d", answerID), payload, nil)
}

func (c *Client) DeleteAnswer(ctx context.Context, answerID uint) error {
	return c.do(ctx, resty.MethodDelete, fmt.Sprintf("/api/answers/%d", answerID), nil, nil)
}

func (c *Client) GetApplicationRoles(ctx context.Context, applicationID uint) ([]model.ApplicationRole, error) {
	var roles []model.ApplicationRole
	err := c.do(ctx, resty.MethodGet, fmt.Sprintf("/api/applications/%d/roles", applicationID), nil, &roles)
	return roles, err
}

type roleSelectionPayload struct {
	CampaignRoleID uint `json:"campaign_role_id"`
	Preference     int  `json:"preference"`
}

func (c *Client) UpdateApplicationRoles(ctx context.Context, applicationID uint, roles []model.ApplicationRole) error {
	payload := struct {
		Roles []roleSelectionPayload `json:"roles"`
	}{Roles: make([]roleSelectionPayload, 0, len(roles))}
	for _, ar := range roles {
		payload.Roles = append(payload.Roles, roleSelectionPayload{
			CampaignRoleID: ar.CampaignRoleID,
			Preference:     ar.Preference,
		})
	}
	return c.do(ctx, resty.MethodPut, fmt.Sprintf("/api/applications/%d/roles", applicationID), payload, nil)
}
