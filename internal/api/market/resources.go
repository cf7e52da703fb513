package market

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/shiptrain/portal/internal/apiclient"
)

// DataResource describes a dataset upload
type DataResource struct {
	Name           string
	Category       string
	DataStructure  string
	IsConfidential bool
	NeedHosting    bool
	Description    string
	Documentation  string
	Tags           []string
	FileExtensions []string
	FileHash       string
	DataFile       *apiclient.File
	SampleFile     *apiclient.File
}

// ComputingResource describes a compute node offered on the market
type ComputingResource struct {
	Name               string
	ServerAddress      string
	Port               string
	CPU                string
	Memory             string
	GPU                string
	Storage            string
	AvailableTimeStart string
	AvailableTimeEnd   string
	SystemType         string
	SandboxVersion     string
	Description        string
	Tags               []string
}

// AlgorithmResource describes an algorithm package upload
type AlgorithmResource struct {
	Name             string
	Version          string
	Category         string
	Dependencies     string
	UsageGuide       string
	APIDocumentation string
	Description      string
	Tags             []string
	AlgorithmFile    *apiclient.File
	DocFile          *apiclient.File
}

// PublishOptions sets the listing terms of a resource
type PublishOptions struct {
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

// Category is a value/label pair
type Category struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type ResourcesAPI struct {
	c Caller
}

func (r *ResourcesAPI) UploadDataResource(ctx context.Context, d DataResource) (*apiclient.Envelope, error) {
	form := apiclient.NewMultipartForm().
		Add("name", d.Name).
		Add("category", d.Category).
		Add("dataStructure", d.DataStructure).
		Add("isConfidential", strconv.FormatBool(d.IsConfidential)).
		Add("needHosting", strconv.FormatBool(d.NeedHosting)).
		Add("description", d.Description).
		AddIf("documentation", d.Documentation).
		AddAll("tags", d.Tags).
		AddAll("fileExtensions", d.FileExtensions).
		AddFile("dataFile", d.DataFile).
		AddFile("sampleFile", d.SampleFile).
		AddIf("fileHash", d.FileHash)
	return r.c.Call(ctx, &apiclient.Request{Method: http.MethodPost, Path: prefix + "/resources/data", Form: form})
}

func (r *ResourcesAPI) UploadComputingResource(ctx context.Context, cr ComputingResource) (*apiclient.Envelope, error) {
	form := apiclient.NewMultipartForm().
		Add("name", cr.Name).
		Add("serverAddress", cr.ServerAddress).
		Add("port", cr.Port).
		Add("cpu", cr.CPU).
		Add("memory", cr.Memory).
		Add("gpu", cr.GPU).
		Add("storage", cr.Storage).
		AddIf("availableTimeStart", cr.AvailableTimeStart).
		AddIf("availableTimeEnd", cr.AvailableTimeEnd).
		AddIf("systemType", cr.SystemType).
		AddIf("sandboxVersion", cr.SandboxVersion).
		AddIf("description", cr.Description).
		AddAll("tags", cr.Tags)
	return r.c.Call(ctx, &apiclient.Request{Method: http.MethodPost, Path: prefix + "/resources/computing", Form: form})
}

func (r *ResourcesAPI) UploadAlgorithmResource(ctx context.Context, a AlgorithmResource) (*apiclient.Envelope, error) {
	form := apiclient.NewMultipartForm().
		Add("name", a.Name).
		Add("version", a.Version).
		Add("category", a.Category).
		AddIf("dependencies", a.Dependencies).
		AddIf("usageGuide", a.UsageGuide).
		AddIf("apiDocumentation", a.APIDocumentation).
		AddIf("description", a.Description).
		AddAll("tags", a.Tags).
		AddFile("algorithmFile", a.AlgorithmFile).
		AddFile("docFile", a.DocFile)
	return r.c.Call(ctx, &apiclient.Request{Method: http.MethodPost, Path: prefix + "/resources/algorithm", Form: form})
}

func (r *ResourcesAPI) UserResources(ctx context.Context) (*apiclient.Envelope, error) {
	return r.c.Call(ctx, &apiclient.Request{Path: prefix + "/user/resources"})
}

func (r *ResourcesAPI) ResourceDetail(ctx context.Context, id string) (*apiclient.Envelope, error) {
	return r.c.Call(ctx, &apiclient.Request{Path: prefix + "/resources/" + id})
}

// Preview downloads a preview of a resource with the extended timeout
func (r *ResourcesAPI) Preview(ctx context.Context, id string) (*apiclient.Response, error) {
	return r.c.Download(ctx, &apiclient.Request{
		Path:         prefix + "/resources/" + id + "/preview",
		ResponseType: apiclient.ResponseBinary,
		Timeout:      r.c.BinaryTimeout(),
	})
}

func (r *ResourcesAPI) Publish(ctx context.Context, id string, opts PublishOptions) (*apiclient.Envelope, error) {
	return r.c.Call(ctx, &apiclient.Request{Method: http.MethodPost, Path: prefix + "/resources/" + id + "/publish", Body: opts})
}

func (r *ResourcesAPI) Delete(ctx context.Context, id string) (*apiclient.Envelope, error) {
	return r.c.Call(ctx, &apiclient.Request{Method: http.MethodDelete, Path: prefix + "/resources/" + id})
}

func (r *ResourcesAPI) UserPublished(ctx context.Context) (*apiclient.Envelope, error) {
	return r.c.Call(ctx, &apiclient.Request{Path: prefix + "/user/published-resources"})
}

func (r *ResourcesAPI) Unpublish(ctx context.Context, id string) (*apiclient.Envelope, error) {
	return r.c.Call(ctx, &apiclient.Request{Method: http.MethodPost, Path: prefix + "/resources/" + id + "/unpublish"})
}

func (r *ResourcesAPI) Categories(ctx context.Context) (*apiclient.Envelope, error) {
	return r.c.Call(ctx, &apiclient.Request{Path: prefix + "/market/categories"})
}

// MockCategories returns the built-in data categories without a request
func (r *ResourcesAPI) MockCategories() *apiclient.Envelope {
	data, _ := json.Marshal(dataCategories)
	return &apiclient.Envelope{Code: apiclient.SuccessCode, Message: "ok", Data: data}
}

var dataCategories = []Category{
	{Value: "structured", Label: "Structured data"},
	{Value: "unstructured", Label: "Unstructured data"},
	{Value: "semi_structured", Label: "Semi-structured data"},
	{Value: "time_series", Label: "Time series data"},
	{Value: "spatial", Label: "Spatial data"},
	{Value: "graph", Label: "Graph data"},
	{Value: "text", Label: "Text data"},
	{Value: "image", Label: "Image data"},
	{Value: "audio", Label: "Audio data"},
	{Value: "video", Label: "Video data"},
	{Value: "sensor", Label: "Sensor data"},
	{Value: "mixed", Label: "Mixed data"},
}
