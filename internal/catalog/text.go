package catalog

var (
	// AboutMe is the about section shown under the hero, in Markdown.
	AboutMe = `I'm a **Computer Science student at the University of Alberta** who likes building
software that is both useful and fun. Most of my projects start with a simple idea and turn
into a chance to learn something new, whether that is a different language, a new tool, or
a tricky problem.

Lately that has meant machine learning pipelines, full-stack web apps built at hackathons,
and low-level experiments like a ray tracer written in C.

Type ` + "`help`" + ` in the console below to poke around.`

	Headline = `Full-Stack Developer & AI Researcher`

	Tagline = `Computer Science @ University of Alberta. I build full-stack apps, data pipelines
and the occasional ray tracer.`
)
