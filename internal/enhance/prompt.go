package enhance

import "fmt"

// rewritePromptTemplate is the fixed instruction contract sent to rewrite
// providers. The canonical headers and formatting rules here must stay in
// sync with what the layout classifier recognizes.
const rewritePromptTemplate = `You are an expert resume writer and ATS optimization specialist. Please enhance the following resume to make it more ATS-friendly and professional.

CRITICAL FORMATTING REQUIREMENTS:
1. Use clear section headers: CONTACT INFORMATION, PROFESSIONAL SUMMARY, PROFESSIONAL EXPERIENCE, TECHNICAL SKILLS, EDUCATION
2. Each section should be on a new line
3. Use bullet points (•) for achievements and responsibilities
4. Separate different jobs/experiences with clear spacing
5. Keep contact information organized (Name, Email, Phone, LinkedIn on separate lines)
6. Format skills as comma-separated lists or bullet points
7. Include dates and locations for jobs and education
8. Use strong action verbs and quantify achievements where possible

FORMATTING STYLE GUIDELINES:
- Use normal text for most content - DO NOT make everything bold
- Only use bold formatting for: section headers, job titles, company names, and degree names
- Keep bullet points and descriptions in regular text weight
- Maintain clean, professional appearance without excessive formatting
- Use consistent spacing and alignment

Enhancement Guidelines:
- Improve language to be more professional and impactful
- Add relevant keywords for better ATS scanning
- Quantify achievements with numbers, percentages, or dollar amounts
- Replace weak phrases like "responsible for" with strong action verbs
- Ensure proper grammar and formatting
- Keep the same factual information but present it better
- PRESERVE all important keywords and technical terms
- DO NOT make the resume too long (keep under 4000 characters)
- Focus on readability and professional appearance

Original Resume:
%s

Please provide the enhanced resume with proper formatting, clear section breaks, and appropriate use of text formatting:`

// BuildRewritePrompt embeds the resume text into the instruction contract.
func BuildRewritePrompt(resumeText string) string {
	return fmt.Sprintf(rewritePromptTemplate, resumeText)
}
