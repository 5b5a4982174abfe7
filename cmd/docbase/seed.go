package main

// sampleCorpus is a small wellness document set for trying the system out
// without any real data.
var sampleCorpus = []struct {
	filename string
	content  string
}{
	{
		filename: "sleep.txt",
		content: `Sleep and Recovery

Most adults need between seven and nine hours of sleep per night. Keeping a consistent schedule, going to bed and waking up at the same time every day, helps regulate the body's internal clock and improves sleep quality over time.

A cool, dark and quiet bedroom supports deeper sleep. Avoid screens for at least an hour before bed, since blue light suppresses melatonin production. Caffeine consumed in the afternoon can still interfere with falling asleep at night.

Short naps of twenty to thirty minutes can restore alertness without causing grogginess. Longer naps late in the day tend to make it harder to fall asleep at night.`,
	},
	{
		filename: "exercise.txt",
		content: `Exercise Fundamentals

Regular physical activity strengthens the heart, improves circulation and lowers the risk of chronic disease. Guidelines recommend at least 150 minutes of moderate aerobic activity per week, such as brisk walking or cycling, plus strength training twice a week.

Warming up before exercise prepares muscles and joints for effort and reduces injury risk. A warm-up can be as simple as five to ten minutes of light movement. Stretching works best on warm muscles, after the workout or at the end of the warm-up.

Consistency matters more than intensity. Three moderate sessions every week build more fitness over a year than occasional exhausting workouts. Rest days are part of training, since muscles adapt and grow during recovery.`,
	},
	{
		filename: "nutrition.txt",
		content: `Everyday Nutrition

A balanced plate contains vegetables, a source of protein, whole grains and healthy fats. Minimally processed foods carry more fiber, vitamins and minerals than their refined counterparts.

Protein supports muscle maintenance and keeps you full longer. Good sources include beans, lentils, fish, eggs and dairy. Whole grains such as oats, brown rice and whole wheat bread release energy slowly and help keep blood sugar stable.

Added sugar appears in many packaged foods under names like glucose syrup, dextrose and maltose. Reading ingredient lists is the most reliable way to spot it. Small sustainable changes to eating habits outlast strict diets.`,
	},
	{
		filename: "hydration.txt",
		content: `Hydration Basics

Water regulates body temperature, carries nutrients and removes waste. Thirst lags behind actual need, so drinking regularly throughout the day works better than waiting until you feel thirsty.

Needs vary with body size, climate and activity, but a common guideline is about two liters of fluid per day, more during exercise or hot weather. Fruit, vegetables, soups and tea all count toward fluid intake.

Urine color is a simple hydration check: pale yellow suggests adequate intake, while dark yellow signals a need for more fluid. Headaches, fatigue and poor concentration are common early signs of mild dehydration.`,
	},
	{
		filename: "stress.txt",
		content: `Managing Stress

Short-term stress is a normal response that sharpens focus, but chronic stress wears down the body and mind. Persistent muscle tension, disturbed sleep and irritability are common warning signs.

Slow breathing is one of the fastest ways to calm the nervous system. Breathing in for four counts and out for six, repeated for a few minutes, lowers heart rate measurably. Regular physical activity and time outdoors both reduce baseline stress levels.

Writing down worries before bed moves them out of your head and onto paper, which makes it easier to fall asleep. Social connection is a strong buffer: talking through a problem with someone you trust reduces its weight.`,
	},
	{
		filename: "meditation.txt",
		content: `Starting Meditation

Meditation trains attention. The basic practice is simple: sit comfortably, focus on the breath, and when the mind wanders, gently bring it back. The noticing and returning is the exercise, not a failure of it.

Beginners benefit from short daily sessions of five to ten minutes rather than occasional long sits. Consistency builds the habit, and the habit builds the skill. Guided recordings can help structure early practice.

Research links regular meditation with reduced anxiety, better emotional regulation and improved sleep. Effects accumulate over weeks of practice, so patience matters more than technique.`,
	},
}
