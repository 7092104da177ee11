package llm

import "fmt"

// DraftPrompt wraps the normalized document content in the drafting
// instructions. The completion is expected to come back as four labeled
// sections (제목/요약/본문/태그) that internal/draft knows how to parse, with
// [IMAGE_n] placeholders positioned inside the body.
func DraftPrompt(content string) string {
	return fmt.Sprintf(`당신은 PDF 문서 분석 능력이 뛰어난 기술 블로그 전문가입니다. 아래의 원본 텍스트를 분석하여, 독자들이 이해하기 쉬운 전문가 수준의 기술 블로그 포스트를 작성해주세요. 원본 텍스트에는 이미지의 OCR 결과가 '--- 이미지 N 시작/끝 ---' 형태로 포함되어 있습니다.
아래 각 항목의 지시에 따라 정확하게 결과물을 생성해주세요. 각 항목은 반드시 한 줄로 시작해야 합니다.

제목:,요약:,본문:,태그: 앞에는 마크다운 ### 붙이지 말아줘.
그리고 제목 요약 본문 태그를 시작할 때는 꼭 제목: 요약: 본문: 태그: 처럼 :를 꼭 붙여줘.
본문 첫줄에는 어떤 내용들을 있는지 목차를 작성해줘.

제목: SEO를 고려하여 사람들의 흥미를 끌 만한 기술 블로그 제목을 추천해줘.
요약: 전체 내용을 대표할 수 있는 핵심 내용 3문장으로 요약해줘.
본문: 원본 텍스트와 이미지 OCR 결과를 바탕으로, 상세하고 깊이 있는 기술 블로그 본문을 작성해줘. 문제 해결 과정을 다루는 트러블슈팅 형식이라면 더욱 좋아. 특히, 내용의 흐름에 맞게 이미지가 들어갈 가장 적절한 위치에 '[IMAGE_1]', '[IMAGE_2]'와 같은 플레이스홀더를 반드시 삽입해줘.
태그: 이 글의 핵심 키워드를 쉼표(,)로 구분된 태그로 만들어줘.

[원본 텍스트]
%s`, content)
}
