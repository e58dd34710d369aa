package notify

import "fmt"

// emailLayout wraps body HTML in the shared branded layout. title and body
// must already be escaped.
func emailLayout(title, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
	<style>
		body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
		.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
		.header { background-color: #1F3A5F; padding: 30px; text-align: center; color: #FFFFFF; }
		.content { padding: 40px 30px; color: #1F3A5F; line-height: 1.6; }
		.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header"><h1>Learning Platform</h1></div>
		<div class="content">
			<h2>%s</h2>
			%s
		</div>
		<div class="footer">You receive this because you are enrolled in a course.</div>
	</div>
</body>
</html>`, title, body)
}
