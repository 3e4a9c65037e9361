package usecase

const summaryPrompt = `You are an expert resume writer. Write a professional summary for the candidate below.
Target role: %s

Rules:
- 3 to 4 sentences, first person implied (no "I").
- Mention the strongest skills and measurable achievements.
- Return only the summary text, no heading and no quotes.

Resume:
%s
`

const enhancePrompt = `You are an expert resume writer. Rewrite the work experience below so it passes
applicant tracking systems: start bullets with strong action verbs, quantify impact, keep it truthful.
Target role: %s

Return your answer STRICTLY in JSON format with this schema:
{
  "description": "<one sentence overview of the role>",
  "highlights": ["<bullet>", "<bullet>", "<bullet>"]
}

Experience:
%s
`

const jobMatchPrompt = `You are an applicant tracking system. Compare the resume with the job description.

Return your answer STRICTLY in JSON format with this schema:
{
  "match_score": <integer 0-100>,
  "matched_keywords": ["<keyword found in both>"],
  "missing_keywords": ["<important keyword from the job missing in the resume>"],
  "suggestions": ["<concrete improvement>"]
}

Job description:
%s

Resume:
%s
`

const importPrompt = `Extract the resume below into structured data.

Return your answer STRICTLY in JSON format with this schema and nothing else:
{
  "personalInfo": {"fullName": "", "email": "", "phone": "", "location": "", "linkedin": "", "website": "", "summary": ""},
  "experience": [{"title": "", "company": "", "location": "", "startDate": "", "endDate": "", "current": false, "description": "", "highlights": [""]}],
  "education": [{"institution": "", "degree": "", "field": "", "startDate": "", "endDate": "", "gpa": ""}],
  "skills": [{"name": "", "level": ""}],
  "projects": [{"name": "", "description": "", "technologies": [""], "url": ""}]
}
Use empty strings or empty arrays for anything missing. Do not invent information.

Resume text:
%s
`
