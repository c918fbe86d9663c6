package analyzer

import "fmt"

// Prompt composers for the three analysis sections.
//
// Each is a pure function: a role statement, a numbered list of required
// output sections, a markdown formatting directive, then the fetched content
// appended verbatim after a separator. Identical inputs produce
// byte-identical prompts — there is no randomness, truncation, or
// sanitization here (the file list was already capped by the GitHub client).

const summaryTemplate = `As a senior software engineer, analyze the following README and provide a concise summary.
1. **Project Purpose**: A single sentence explaining what the project does.
2. **Key Features**: A bulleted list of 3-5 important features.
3. **Technology Stack**: A brief list of the main technologies mentioned.
Format your response in Markdown.
---
%s`

const structureTemplate = `You are a principal software architect. Based *only* on the file structure list provided below, perform a high-level analysis.

1. **Likely Architecture & Purpose**: What kind of application is this (e.g., Web App, Data Science Project, CLI Tool, Library)? What software architecture or framework might it be using (e.g., Flask, React, Django, Microservices)?
2. **Key Components**: Identify the purpose of major directories (e.g., ` + "`src`, `tests`, `static`, `components`" + `).
3. **Code Organization**: Briefly comment on the project's apparent organization and conventions based on the file and folder names.

Format the entire response in Markdown. Do not make assumptions about the code *inside* the files.
---
FILE STRUCTURE:
%s`

const setupTemplate = `Based on the following README and file structure, guide a junior developer on how to set up and run this project locally.

Include:
1. Required software/tools (e.g., Python, Node.js, Docker)
2. Dependency installation commands
3. Setup or build commands (if any)
4. How to run or test the project
5. Environment variable setup (if found in .env or README)

Format the output in clear Markdown with step-by-step instructions.

--- README ---
%s

--- FILE STRUCTURE ---
%s`

// SummaryPrompt builds the README summarization prompt.
func SummaryPrompt(readme string) string {
	return fmt.Sprintf(summaryTemplate, readme)
}

// StructurePrompt builds the architecture-analysis prompt from a
// newline-joined file list.
func StructurePrompt(fileStructure string) string {
	return fmt.Sprintf(structureTemplate, fileStructure)
}

// SetupPrompt builds the setup-guide prompt. Either input may be empty when
// the corresponding fetch failed — the guide is generated from whatever text
// is available.
func SetupPrompt(readme, fileStructure string) string {
	return fmt.Sprintf(setupTemplate, readme, fileStructure)
}
