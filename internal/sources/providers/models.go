package providers

import "github.com/agentstation/providerhub/pkg/catalogs"

var vllmModels = []catalogs.ModelInfo{
	{ID: "llama-2-7b", Name: "Llama 2 (7B)", Provider: catalogs.ProviderIDVLLM, Description: "Meta's Llama 2 7B parameter model", ContextLength: 4096},
	{ID: "llama-2-13b", Name: "Llama 2 (13B)", Provider: catalogs.ProviderIDVLLM, Description: "Meta's Llama 2 13B parameter model", ContextLength: 4096},
	{ID: "llama-2-70b", Name: "Llama 2 (70B)", Provider: catalogs.ProviderIDVLLM, Description: "Meta's Llama 2 70B parameter model", ContextLength: 4096},
	{ID: "mistral-7b", Name: "Mistral (7B)", Provider: catalogs.ProviderIDVLLM, Description: "Mistral AI's 7B parameter model", ContextLength: 8192},
	{ID: "mixtral-8x7b", Name: "Mixtral (8x7B)", Provider: catalogs.ProviderIDVLLM, Description: "Mistral AI's Mixtral 8x7B MoE model", ContextLength: 32768},
	{ID: "custom", Name: "Custom Model", Provider: catalogs.ProviderIDVLLM, Description: "Specify a custom model name"},
}

var perplexityModels = []catalogs.ModelInfo{
	{ID: "sonar-small-online", Name: "Sonar Small (Online)", Provider: catalogs.ProviderIDPerplexity, Description: "Efficient model with online search capabilities", ContextLength: 12000},
	{ID: "sonar-medium-online", Name: "Sonar Medium (Online)", Provider: catalogs.ProviderIDPerplexity, Description: "Balanced model with online search capabilities", ContextLength: 12000},
	{ID: "sonar-large-online", Name: "Sonar Large (Online)", Provider: catalogs.ProviderIDPerplexity, Description: "Powerful model with online search capabilities", ContextLength: 12000},
	{ID: "codey-small", Name: "Codey Small", Provider: catalogs.ProviderIDPerplexity, Description: "Specialized for code generation and understanding", ContextLength: 12000},
	{ID: "codey-large", Name: "Codey Large", Provider: catalogs.ProviderIDPerplexity, Description: "Advanced code generation and understanding", ContextLength: 12000},
}

// The speech proxy has no listing endpoint; the entry keeps the upstream
// provider back reference as shipped.
var elevenLabsModels = []catalogs.ModelInfo{
	{ID: "sonar-small-online", Name: "Sonar Small (Online)", Provider: catalogs.ProviderIDPerplexity, Description: "Efficient model with online search capabilities", ContextLength: 12000},
}
